package models

import "time"

// Conversation is a private thread between two or more users. LastMessageID
// is a cache of the newest message; the authoritative ordering is the
// message table itself.
type Conversation struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"index"`
	LastMessageID *uint     `json:"last_message_id,omitempty"`
}

// ConversationParticipant links a user into a conversation. One row per
// member; the pair is unique.
type ConversationParticipant struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	ConversationID uint `json:"conversation_id" gorm:"index;uniqueIndex:idx_conversation_member"`
	UserID         uint `json:"user_id" gorm:"index;uniqueIndex:idx_conversation_member"`
}

type CreateConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" validate:"required,min=1,dive,gt=0"`
}

type AddParticipantRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

// ConversationView is a conversation plus its member list and last-message
// preview.
type ConversationView struct {
	Conversation
	ParticipantIDs []uint          `json:"participant_ids"`
	LastMessage    *PrivateMessage `json:"last_message,omitempty"`
}
