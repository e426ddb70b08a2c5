package models

import (
	"encoding/json"
	"time"
)

// NotifType names a notification category.
type NotifType string

const (
	NotifComment NotifType = "comment"
	NotifReply   NotifType = "reply"
	NotifMention NotifType = "mention"
	NotifSystem  NotifType = "system"
)

// Notification is one entry in a recipient's notification feed. The feed is
// an append-only log with a read-state overlay: rows are never deleted, and
// the only mutation after creation is flipping IsRead to true. TargetKind
// and TargetID together form an optional weak reference; system
// notifications carry none.
type Notification struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	RecipientID uint        `json:"recipient_id" gorm:"index"`
	NotifType   NotifType   `json:"notif_type" gorm:"size:10;index"`
	TargetKind  *EntityKind `json:"target_kind,omitempty" gorm:"size:10"`
	TargetID    *uint       `json:"target_id,omitempty"`
	IsRead      bool        `json:"is_read" gorm:"default:false;index"`
	ExtraData   json.RawMessage `json:"extra_data,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
}

// Target returns the entity reference, or nil for target-less notifications.
func (n *Notification) Target() *EntityRef {
	if n.TargetKind == nil || n.TargetID == nil {
		return nil
	}
	return &EntityRef{Kind: *n.TargetKind, ID: *n.TargetID}
}

// NotificationView is the serialized notification with its target resolved.
// TargetObject is null both for target-less notifications and for orphans.
type NotificationView struct {
	Notification
	TargetObject *TargetObject `json:"target_object"`
}
