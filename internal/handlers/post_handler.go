package handlers

import (
	"net/http"
	"strconv"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post CRUD and listing.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	reactions      *services.ReactionService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, reactions *services.ReactionService) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		reactions:      reactions,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns posts filtered by category, tags, status and search
// query, pinned first then newest first.
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter := repositories.PostFilter{
		Status: models.PostStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if v, err := strconv.ParseUint(c.QueryParam("category"), 10, 64); err == nil {
		id := uint(v)
		filter.CategoryID = &id
	}
	for _, raw := range c.QueryParams()["tags"] {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.TagIDs = append(filter.TagIDs, uint(v))
		}
	}

	posts, total, err := h.postRepository.ListPosts(filter)
	if err != nil {
		return domainError(err)
	}

	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = h.buildView(c, &posts[i])
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": views,
		"total": total,
	})
}

// GetPost returns one post with author and reaction counts.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, h.buildView(c, post))
}

// CreatePost creates a post authored by the caller. Posting requires a
// verified account.
func (h *PostHandler) CreatePost(c echo.Context) error {
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

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = models.PostDraft
	}
	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    &userID,
		IsAnonymous: req.IsAnonymous,
		Status:      status,
		CategoryID:  req.CategoryID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return domainError(err)
	}
	if len(req.TagIDs) > 0 {
		if err := h.postRepository.ReplaceTags(post, req.TagIDs); err != nil {
			return domainError(err)
		}
	}
	return c.JSON(http.StatusCreated, h.buildView(c, post))
}

// UpdatePost edits a post. Only the author may edit; authorship itself
// never changes.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return domainError(err)
	}
	if post.AuthorID == nil || *post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsAnonymous != nil {
		post.IsAnonymous = *req.IsAnonymous
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return domainError(err)
	}
	if req.TagIDs != nil {
		if err := h.postRepository.ReplaceTags(post, req.TagIDs); err != nil {
			return domainError(err)
		}
	}
	return c.JSON(http.StatusOK, h.buildView(c, post))
}

// DeletePost removes a post. Only the author may delete it. Actions and
// notifications referencing the post are left in place and become orphans.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return domainError(err)
	}
	if post.AuthorID == nil || *post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author")
	}
	if err := h.postRepository.DeletePost(id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) buildView(c echo.Context, post *models.Post) models.PostView {
	view := models.PostView{Post: *post, Author: models.AnonymousAuthor()}

	if !post.IsAnonymous && post.AuthorID != nil {
		if author, err := h.userRepository.GetUserByID(*post.AuthorID); err == nil {
			view.Author = author.ToCompact()
		}
	}

	ctx := c.Request().Context()
	ref := models.PostRef(post.ID)
	view.LikesCount, _ = h.reactions.CountActions(ctx, ref, models.ActionLike)
	view.FavoritesCount, _ = h.reactions.CountActions(ctx, ref, models.ActionFavorite)
	view.CommentsCount, _ = h.postRepository.CommentsCount(post.ID)
	return view
}
