package handlers

import (
	"net/http"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler exposes the like/favorite/report toggles for posts and
// comments plus the caller's action listing.
type ReactionHandler struct {
	reactions *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.toggle(models.KindPost, models.ActionLike))
	g.POST("/posts/:id/favorite", h.toggle(models.KindPost, models.ActionFavorite))
	g.POST("/posts/:id/report", h.toggle(models.KindPost, models.ActionReport))
	g.POST("/comments/:id/like", h.toggle(models.KindComment, models.ActionLike))
	g.POST("/comments/:id/favorite", h.toggle(models.KindComment, models.ActionFavorite))
	g.POST("/comments/:id/report", h.toggle(models.KindComment, models.ActionReport))
	g.GET("/actions", h.ListMyActions)
}

// statusWord maps a toggle outcome to its response vocabulary.
func statusWord(actionType models.ActionType, status models.ToggleStatus) string {
	on := status == models.ToggleCreated
	switch actionType {
	case models.ActionLike:
		if on {
			return "liked"
		}
		return "unliked"
	case models.ActionFavorite:
		if on {
			return "favorited"
		}
		return "unfavorited"
	default:
		if on {
			return "reported"
		}
		return "unreported"
	}
}

func (h *ReactionHandler) toggle(kind models.EntityKind, actionType models.ActionType) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUserID(c)
		if err != nil {
			return err
		}
		targetID, err := paramUint(c, "id")
		if err != nil {
			return err
		}

		target := models.EntityRef{Kind: kind, ID: targetID}
		status, err := h.reactions.Toggle(c.Request().Context(), userID, actionType, target)
		if err != nil {
			return domainError(err)
		}

		count, _ := h.reactions.CountActions(c.Request().Context(), target, actionType)
		return c.JSON(http.StatusOK, echo.Map{
			"status": statusWord(actionType, status),
			"count":  count,
		})
	}
}

// ListMyActions returns the caller's active actions, newest first.
func (h *ReactionHandler) ListMyActions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	actions, err := h.reactions.ListActionsByUser(userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"actions": actions})
}
