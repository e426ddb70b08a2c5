package repositories

import (
	"time"

	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation operations
type ConversationRepository interface {
	CreateConversation(participantIDs []uint) (*models.Conversation, error)
	GetConversationByID(id uint) (*models.Conversation, error)
	ListConversationsForUser(userID uint) ([]models.Conversation, error)
	ParticipantIDs(conversationID uint) ([]uint, error)
	IsParticipant(conversationID, userID uint) (bool, error)
	AddParticipant(conversationID, userID uint) error
	GetMessageByID(id uint) (*models.PrivateMessage, error)
	AppendMessage(message *models.PrivateMessage) error
	ListMessages(conversationID uint) ([]models.PrivateMessage, error)
	MarkMessageRead(messageID uint) error
	MarkAllMessagesRead(conversationID, receiverID uint) error
	SetMessageDeleted(messageID uint, column string) error
}

// PostgresConversationRepository implements ConversationRepository for PostgreSQL
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// CreateConversation inserts the conversation and its membership rows in one
// transaction.
func (r *PostgresConversationRepository) CreateConversation(participantIDs []uint) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			member := models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         userID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *PostgresConversationRepository) GetConversationByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.First(&conversation, id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *PostgresConversationRepository) ListConversationsForUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *PostgresConversationRepository) ParticipantIDs(conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *PostgresConversationRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresConversationRepository) AddParticipant(conversationID, userID uint) error {
	member := models.ConversationParticipant{ConversationID: conversationID, UserID: userID}
	return r.db.Create(&member).Error
}

func (r *PostgresConversationRepository) GetMessageByID(id uint) (*models.PrivateMessage, error) {
	var message models.PrivateMessage
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// AppendMessage inserts the message and refreshes the conversation's
// last-message cache and updated_at in a single transaction, so no reader
// ever sees one without the other.
func (r *PostgresConversationRepository) AppendMessage(message *models.PrivateMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if message.SentAt.IsZero() {
			message.SentAt = time.Now()
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(map[string]interface{}{
				"last_message_id": message.ID,
				"updated_at":      message.SentAt,
			}).Error
	})
}

// ListMessages returns every message of the conversation in sent order,
// ties broken by id. Per-viewer visibility filtering happens in the service.
func (r *PostgresConversationRepository) ListMessages(conversationID uint) ([]models.PrivateMessage, error) {
	var messages []models.PrivateMessage
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *PostgresConversationRepository) MarkMessageRead(messageID uint) error {
	return r.db.Model(&models.PrivateMessage{}).
		Where("id = ?", messageID).
		Update("is_read", true).Error
}

func (r *PostgresConversationRepository) MarkAllMessagesRead(conversationID, receiverID uint) error {
	return r.db.Model(&models.PrivateMessage{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, receiverID).
		Update("is_read", true).Error
}

// SetMessageDeleted flips one side's deletion flag. column must be
// "sender_deleted" or "receiver_deleted".
func (r *PostgresConversationRepository) SetMessageDeleted(messageID uint, column string) error {
	return r.db.Model(&models.PrivateMessage{}).
		Where("id = ?", messageID).
		Update(column, true).Error
}
