package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9\p{Han}]+`)

// slugify builds a URL alias from a name.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CategoryHandler handles categories and tags.
type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
	tagRepository      repositories.TagRepository
	userRepository     repositories.UserRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository, tagRepo repositories.TagRepository, userRepo repositories.UserRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepository: categoryRepo,
		tagRepository:      tagRepo,
		userRepository:     userRepo,
	}
}

// RegisterCategoryRoutes registers category and tag routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.POST("/categories", h.CreateCategory)
	g.GET("/tags", h.ListTags)
	g.POST("/tags", h.CreateTag)
}

// ListCategories returns all categories ordered by name.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryRepository.ListCategories()
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// CreateCategory adds a category. Verified users only.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	if err := h.requireVerified(c); err != nil {
		return err
	}

	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	if err := h.categoryRepository.CreateCategory(category); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// ListTags returns all tags ordered by name.
func (h *CategoryHandler) ListTags(c echo.Context) error {
	tags, err := h.tagRepository.ListTags()
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// CreateTag adds a tag. Verified users only.
func (h *CategoryHandler) CreateTag(c echo.Context) error {
	if err := h.requireVerified(c); err != nil {
		return err
	}

	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag := &models.Tag{Name: req.Name, Slug: slugify(req.Name)}
	if err := h.tagRepository.CreateTag(tag); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *CategoryHandler) requireVerified(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return domainError(err)
	}
	if !user.IsVerifiedUser {
		return echo.NewHTTPError(http.StatusForbidden, "Verified account required")
	}
	return nil
}
