package handlers

import (
	"net/http"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and user search requests.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.PUT("/me", h.UpdateMe)
	g.GET("/users/search", h.SearchUsers)
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe updates the editable profile fields. Verification state and
// openid are server-managed and cannot be set here.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return domainError(err)
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Phone != "" {
		user.Phone = req.Phone
		user.IsPhoneVerified = false
	}
	if req.Department != "" {
		user.Department = req.Department
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers matches users by username, nickname or student ID.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"users": []models.User{}})
	}

	users, err := h.userRepository.SearchUsers(query, 20)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
