package models

import "time"

// PrivateMessage is one message inside a conversation. Deletion is soft and
// per side: SenderDeleted hides the row from the sender's view and
// ReceiverDeleted from the receiver's, independently. The row itself is
// never removed and keeps anchoring the conversation's last-message cache
// and ordering.
type PrivateMessage struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ConversationID  uint      `json:"conversation_id" gorm:"index"`
	SenderID        uint      `json:"sender_id" gorm:"index"`
	ReceiverID      uint      `json:"receiver_id" gorm:"index"`
	Content         string    `json:"content" gorm:"type:text"`
	SentAt          time.Time `json:"sent_at" gorm:"index"`
	IsRead          bool      `json:"is_read" gorm:"default:false"`
	SenderDeleted   bool      `json:"-" gorm:"default:false"`
	ReceiverDeleted bool      `json:"-" gorm:"default:false"`
}

type SendMessageRequest struct {
	Receiver uint   `json:"receiver" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required,min=1"`
}
