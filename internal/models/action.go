package models

import "time"

// ActionType names a reaction a user can apply to an entity.
type ActionType string

const (
	ActionLike     ActionType = "like"
	ActionFavorite ActionType = "favorite"
	ActionReport   ActionType = "report"
)

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	return t == ActionLike || t == ActionFavorite || t == ActionReport
}

// Action records one active reaction by a user against a post or comment.
// The composite unique index is the concurrency primitive for the toggle:
// at most one row may exist per (user, type, target kind, target id), and a
// toggle-off removes the row physically rather than soft-deleting it.
type Action struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"index;uniqueIndex:idx_user_action_target"`
	ActionType ActionType `json:"action_type" gorm:"size:10;uniqueIndex:idx_user_action_target"`
	TargetKind EntityKind `json:"target_kind" gorm:"size:10;uniqueIndex:idx_user_action_target"`
	TargetID   uint       `json:"target_id" gorm:"uniqueIndex:idx_user_action_target"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
}

// Target returns the entity reference this action points at.
func (a *Action) Target() EntityRef {
	return EntityRef{Kind: a.TargetKind, ID: a.TargetID}
}

// ToggleStatus reports the outcome of a toggle call.
type ToggleStatus string

const (
	ToggleCreated ToggleStatus = "created"
	ToggleDeleted ToggleStatus = "deleted"
)
