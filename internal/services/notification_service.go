package services

import (
	"context"
	"errors"

	"github.com/campushub/backend/internal/cache"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NotificationService serves a recipient's notification feed. Reading a
// notification whose target has since been deleted reconciles it on the
// spot: the row is marked read as a terminal archival step but never
// removed, and the reader just sees a null target.
type NotificationService struct {
	notifications repositories.NotificationRepository
	resolver      *TargetResolver
	counts        *cache.Counts
	log           zerolog.Logger
}

// NewNotificationService wires the notification service.
func NewNotificationService(
	notifications repositories.NotificationRepository,
	resolver *TargetResolver,
	counts *cache.Counts,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		resolver:      resolver,
		counts:        counts,
		log:           log,
	}
}

// List returns the recipient's notifications newest first, with targets
// resolved. Orphans are reconciled lazily as they pass through.
func (s *NotificationService) List(ctx context.Context, recipientID uint, unreadOnly bool, page, limit int) ([]models.NotificationView, int64, error) {
	notifications, total, err := s.notifications.ListByRecipient(recipientID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]models.NotificationView, len(notifications))
	reconciled := false
	for i := range notifications {
		view, wasOrphan := s.resolveView(ctx, &notifications[i])
		views[i] = view
		reconciled = reconciled || wasOrphan
	}
	if reconciled {
		s.counts.InvalidateUnread(ctx, recipientID)
	}
	return views, total, nil
}

// resolveView dereferences the notification's target and reconciles an
// orphan when the lookup comes back empty.
func (s *NotificationService) resolveView(ctx context.Context, n *models.Notification) (models.NotificationView, bool) {
	view := models.NotificationView{Notification: *n}

	target := n.Target()
	if target == nil {
		// Target-less notifications are never orphans.
		return view, false
	}

	resolved, err := s.resolver.Resolve(*target)
	if err != nil {
		s.log.Warn().Err(err).Uint("notification_id", n.ID).Msg("notification target resolve failed")
		return view, false
	}
	if resolved == nil {
		if !n.IsRead {
			if err := s.notifications.MarkAsRead(n.ID); err != nil {
				s.log.Warn().Err(err).Uint("notification_id", n.ID).Msg("orphan reconcile failed")
			} else {
				view.IsRead = true
			}
		}
		return view, true
	}

	object := resolved.Object
	view.TargetObject = &object
	return view, false
}

// MarkRead flips one notification to read. Only the recipient may do so;
// marking an already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, actingUserID, notificationID uint) error {
	n, err := s.notifications.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.RecipientID != actingUserID {
		return ErrForbidden
	}
	if err := s.notifications.MarkAsRead(notificationID); err != nil {
		return err
	}
	s.counts.InvalidateUnread(ctx, actingUserID)
	return nil
}

// MarkAllRead flips every unread notification of the recipient. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	if err := s.notifications.MarkAllAsRead(recipientID); err != nil {
		return err
	}
	s.counts.InvalidateUnread(ctx, recipientID)
	return nil
}

// UnreadCount returns the recipient's unread total, cache-first.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	if v, ok := s.counts.GetUnreadCount(ctx, recipientID); ok {
		return v, nil
	}
	count, err := s.notifications.GetUnreadCount(recipientID)
	if err != nil {
		return 0, err
	}
	s.counts.SetUnreadCount(ctx, recipientID, count)
	return count, nil
}
