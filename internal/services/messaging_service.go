package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/pkg/events"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MessagingService owns conversations and their private messages. Message
// rows are never physically deleted: each side hides messages from its own
// view independently, and the conversation's last-message cache keeps
// pointing at the newest row regardless of either side's deletion flags.
type MessagingService struct {
	conversations repositories.ConversationRepository
	users         repositories.UserRepository
	producer      *events.Producer
	log           zerolog.Logger
}

// NewMessagingService wires the messaging service.
func NewMessagingService(
	conversations repositories.ConversationRepository,
	users repositories.UserRepository,
	producer *events.Producer,
	log zerolog.Logger,
) *MessagingService {
	return &MessagingService{
		conversations: conversations,
		users:         users,
		producer:      producer,
		log:           log,
	}
}

// CreateConversation starts a thread between the creator and the given
// participants. The resulting member set must have at least two users, and
// every referenced user must exist.
func (s *MessagingService) CreateConversation(ctx context.Context, creatorID uint, otherParticipantIDs []uint) (*models.ConversationView, error) {
	memberSet := map[uint]struct{}{creatorID: {}}
	for _, id := range otherParticipantIDs {
		memberSet[id] = struct{}{}
	}
	if len(memberSet) < 2 {
		return nil, ErrInvalidArgument
	}

	members := make([]uint, 0, len(memberSet))
	for id := range memberSet {
		if _, err := s.users.GetUserByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		members = append(members, id)
	}

	conversation, err := s.conversations.CreateConversation(members)
	if err != nil {
		return nil, err
	}
	return s.buildView(conversation)
}

// AddParticipant brings another user into the conversation. Only existing
// participants may do so; adding a member twice is rejected.
func (s *MessagingService) AddParticipant(ctx context.Context, actorID, conversationID, userID uint) error {
	if err := s.requireParticipant(conversationID, actorID); err != nil {
		return err
	}
	if _, err := s.users.GetUserByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	already, err := s.conversations.IsParticipant(conversationID, userID)
	if err != nil {
		return err
	}
	if already {
		return ErrInvalidArgument
	}
	return s.conversations.AddParticipant(conversationID, userID)
}

// ListConversations returns the user's conversations ordered by most recent
// activity, each with its member list and last-message preview.
func (s *MessagingService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationView, error) {
	conversations, err := s.conversations.ListConversationsForUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ConversationView, 0, len(conversations))
	for i := range conversations {
		view, err := s.buildView(&conversations[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// SendMessage appends a message. The sender must be a participant
// (Forbidden otherwise) and the receiver must be one too (InvalidArgument
// otherwise). The append and the conversation cache refresh are one atomic
// unit in the repository.
func (s *MessagingService) SendMessage(ctx context.Context, conversationID, senderID, receiverID uint, content string) (*models.PrivateMessage, error) {
	if content == "" || receiverID == 0 {
		return nil, ErrInvalidArgument
	}
	if _, err := s.getConversation(conversationID); err != nil {
		return nil, err
	}
	if err := s.requireParticipant(conversationID, senderID); err != nil {
		return nil, err
	}
	isReceiver, err := s.conversations.IsParticipant(conversationID, receiverID)
	if err != nil {
		return nil, err
	}
	if !isReceiver {
		return nil, ErrInvalidArgument
	}

	message := &models.PrivateMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		SentAt:         time.Now(),
	}
	if err := s.conversations.AppendMessage(message); err != nil {
		return nil, err
	}

	if err := s.producer.Publish(ctx, fmt.Sprintf("message-%d", message.ID), message); err != nil {
		s.log.Warn().Err(err).Uint("message_id", message.ID).Msg("message event publish failed")
	}
	return message, nil
}

// ListMessages returns the conversation's messages in sent order, minus
// those the viewer has deleted on their side.
func (s *MessagingService) ListMessages(ctx context.Context, conversationID, viewerID uint) ([]models.PrivateMessage, error) {
	if _, err := s.getConversation(conversationID); err != nil {
		return nil, err
	}
	if err := s.requireParticipant(conversationID, viewerID); err != nil {
		return nil, err
	}

	messages, err := s.conversations.ListMessages(conversationID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.PrivateMessage, 0, len(messages))
	for _, m := range messages {
		if m.SenderID == viewerID && m.SenderDeleted {
			continue
		}
		if m.ReceiverID == viewerID && m.ReceiverDeleted {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// MarkMessageRead flips a message to read. Only its receiver may do so.
func (s *MessagingService) MarkMessageRead(ctx context.Context, conversationID, messageID, viewerID uint) error {
	message, err := s.getMessage(conversationID, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != viewerID {
		return ErrForbidden
	}
	return s.conversations.MarkMessageRead(messageID)
}

// MarkAllMessagesRead marks every unread message addressed to the viewer.
func (s *MessagingService) MarkAllMessagesRead(ctx context.Context, conversationID, viewerID uint) error {
	if _, err := s.getConversation(conversationID); err != nil {
		return err
	}
	if err := s.requireParticipant(conversationID, viewerID); err != nil {
		return err
	}
	return s.conversations.MarkAllMessagesRead(conversationID, viewerID)
}

// DeleteForViewer hides a message from the caller's side only. The other
// participant's view and the conversation's last-message cache are
// untouched.
func (s *MessagingService) DeleteForViewer(ctx context.Context, conversationID, messageID, viewerID uint) error {
	message, err := s.getMessage(conversationID, messageID)
	if err != nil {
		return err
	}
	switch viewerID {
	case message.SenderID:
		return s.conversations.SetMessageDeleted(messageID, "sender_deleted")
	case message.ReceiverID:
		return s.conversations.SetMessageDeleted(messageID, "receiver_deleted")
	default:
		return ErrForbidden
	}
}

func (s *MessagingService) buildView(conversation *models.Conversation) (*models.ConversationView, error) {
	participantIDs, err := s.conversations.ParticipantIDs(conversation.ID)
	if err != nil {
		return nil, err
	}
	view := &models.ConversationView{
		Conversation:   *conversation,
		ParticipantIDs: participantIDs,
	}
	if conversation.LastMessageID != nil {
		message, err := s.conversations.GetMessageByID(*conversation.LastMessageID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		view.LastMessage = message
	}
	return view, nil
}

func (s *MessagingService) requireParticipant(conversationID, userID uint) error {
	ok, err := s.conversations.IsParticipant(conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (s *MessagingService) getConversation(conversationID uint) (*models.Conversation, error) {
	conversation, err := s.conversations.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return conversation, nil
}

func (s *MessagingService) getMessage(conversationID, messageID uint) (*models.PrivateMessage, error) {
	message, err := s.conversations.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if message.ConversationID != conversationID {
		return nil, ErrNotFound
	}
	return message, nil
}
