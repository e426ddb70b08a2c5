package handlers

import (
	"net/http"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ConversationHandler handles private conversations and their messages.
type ConversationHandler struct {
	messaging *services.MessagingService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(messaging *services.MessagingService) *ConversationHandler {
	return &ConversationHandler{messaging: messaging}
}

// RegisterConversationRoutes registers conversation-related routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.GET("/conversations", h.ListConversations)
	g.POST("/conversations", h.CreateConversation)
	g.POST("/conversations/:id/participants", h.AddParticipant)
	g.GET("/conversations/:id/messages", h.ListMessages)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.POST("/conversations/:cid/messages/:id/mark-as-read", h.MarkMessageRead)
	g.DELETE("/conversations/:cid/messages/:id", h.DeleteMessage)
	g.POST("/conversations/:id/mark-all-messages-read", h.MarkAllMessagesRead)
}

// ListConversations returns the caller's conversations by most recent
// activity.
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	views, err := h.messaging.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": views})
}

// CreateConversation starts a conversation between the caller and the given
// participants.
func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.messaging.CreateConversation(c.Request().Context(), userID, req.ParticipantIDs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

// AddParticipant brings another user into the conversation.
func (h *ConversationHandler) AddParticipant(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req models.AddParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.messaging.AddParticipant(c.Request().Context(), userID, conversationID, req.UserID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "participant added"})
}

// ListMessages returns the conversation's messages visible to the caller.
func (h *ConversationHandler) ListMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	messages, err := h.messaging.ListMessages(c.Request().Context(), conversationID, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// SendMessage appends a message to the conversation.
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.messaging.SendMessage(c.Request().Context(), conversationID, userID, req.Receiver, req.Content)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

// MarkMessageRead marks one message as read. Receiver only.
func (h *ConversationHandler) MarkMessageRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "cid")
	if err != nil {
		return err
	}
	messageID, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.messaging.MarkMessageRead(c.Request().Context(), conversationID, messageID, userID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "marked as read"})
}

// DeleteMessage hides a message from the caller's view only.
func (h *ConversationHandler) DeleteMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "cid")
	if err != nil {
		return err
	}
	messageID, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.messaging.DeleteForViewer(c.Request().Context(), conversationID, messageID, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllMessagesRead marks every message addressed to the caller as read.
func (h *ConversationHandler) MarkAllMessagesRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.messaging.MarkAllMessagesRead(c.Request().Context(), conversationID, userID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "all messages marked as read"})
}
