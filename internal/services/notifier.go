package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/cache"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/pkg/events"
	"github.com/rs/zerolog"
)

// Notifier writes notification rows after the triggering transaction has
// committed. Every method is best-effort: a failed write is logged at warn
// level and swallowed, so the originating action never fails on account of
// its notification.
type Notifier struct {
	notifications repositories.NotificationRepository
	counts        *cache.Counts
	producer      *events.Producer
	log           zerolog.Logger
}

// NewNotifier creates a Notifier. counts and producer may be nil.
func NewNotifier(notifications repositories.NotificationRepository, counts *cache.Counts, producer *events.Producer, log zerolog.Logger) *Notifier {
	return &Notifier{notifications: notifications, counts: counts, producer: producer, log: log}
}

// Emit writes one notification. target may be nil for system notifications;
// extra is marshalled into the opaque extra_data payload.
func (n *Notifier) Emit(ctx context.Context, recipientID uint, notifType models.NotifType, target *models.EntityRef, extra map[string]interface{}) {
	notification := &models.Notification{
		RecipientID: recipientID,
		NotifType:   notifType,
		CreatedAt:   time.Now(),
	}
	if target != nil {
		kind, id := target.Kind, target.ID
		notification.TargetKind = &kind
		notification.TargetID = &id
	}
	if extra != nil {
		payload, err := json.Marshal(extra)
		if err != nil {
			n.log.Warn().Err(err).Msg("notification extra_data marshal failed")
		} else {
			notification.ExtraData = payload
		}
	}

	if err := n.notifications.CreateNotification(notification); err != nil {
		n.log.Warn().Err(err).
			Uint("recipient_id", recipientID).
			Str("notif_type", string(notifType)).
			Msg("notification emit failed")
		return
	}

	n.counts.InvalidateUnread(ctx, recipientID)

	if err := n.producer.Publish(ctx, fmt.Sprintf("notification-%d", notification.ID), events.NotificationEmitted{
		NotificationID: notification.ID,
		RecipientID:    recipientID,
		NotifType:      notifType,
		At:             notification.CreatedAt,
	}); err != nil {
		n.log.Warn().Err(err).Uint("notification_id", notification.ID).Msg("notification event publish failed")
	}
}

// NotifyReaction tells an entity's author that someone liked or favorited
// it. Authorless targets and self-reactions are skipped.
func (n *Notifier) NotifyReaction(ctx context.Context, actorID uint, actionType models.ActionType, target models.EntityRef, authorID *uint) {
	if authorID == nil || *authorID == actorID {
		return
	}
	n.Emit(ctx, *authorID, models.NotifSystem, &target, map[string]interface{}{
		"actor":       actorID,
		"action_type": string(actionType),
	})
}

// NotifyComment tells a post's author about a new comment, or a parent
// comment's author about a reply. Self-notification is skipped.
func (n *Notifier) NotifyComment(ctx context.Context, actorID uint, comment *models.Comment, recipientID uint, notifType models.NotifType) {
	if recipientID == actorID {
		return
	}
	target := models.CommentRef(comment.ID)
	n.Emit(ctx, recipientID, notifType, &target, map[string]interface{}{
		"actor":   actorID,
		"post_id": comment.PostID,
	})
}
