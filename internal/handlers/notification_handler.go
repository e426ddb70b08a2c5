package handlers

import (
	"net/http"

	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/:id/mark-as-read", h.MarkAsRead)
	g.POST("/notifications/mark-all-as-read", h.MarkAllAsRead)
}

// GetNotifications returns the caller's notifications, newest first.
// Orphaned targets come back as null target_object, never as errors.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryParam("unread") == "true"
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	if limit > 50 {
		limit = 50
	}

	views, total, err := h.notifications.List(c.Request().Context(), userID, unreadOnly, page, limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": views,
		"total":         total,
	})
}

// GetUnreadCount returns the caller's unread notification total.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one notification as read. Recipient only.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), userID, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "marked as read"})
}

// MarkAllAsRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllRead(c.Request().Context(), userID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "all marked as read"})
}
