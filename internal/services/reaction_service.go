package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/cache"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/pkg/events"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ReactionService owns the like/favorite/report toggle and its follow-up
// side effects. The toggle itself is one serializable operation in the
// action ledger; count invalidation, event publishing and notification
// emission run afterwards, best-effort.
type ReactionService struct {
	actions  repositories.ActionRepository
	users    repositories.UserRepository
	resolver *TargetResolver
	notifier *Notifier
	counts   *cache.Counts
	producer *events.Producer
	log      zerolog.Logger
}

// NewReactionService wires the reaction service.
func NewReactionService(
	actions repositories.ActionRepository,
	users repositories.UserRepository,
	resolver *TargetResolver,
	notifier *Notifier,
	counts *cache.Counts,
	producer *events.Producer,
	log zerolog.Logger,
) *ReactionService {
	return &ReactionService{
		actions:  actions,
		users:    users,
		resolver: resolver,
		notifier: notifier,
		counts:   counts,
		producer: producer,
		log:      log,
	}
}

// Toggle flips the (user, type, target) action. Repeated calls with the same
// arguments strictly alternate created/deleted. Post reactions require a
// verified account; the target must exist at call time.
func (s *ReactionService) Toggle(ctx context.Context, userID uint, actionType models.ActionType, target models.EntityRef) (models.ToggleStatus, error) {
	if !actionType.Valid() || !target.Kind.Valid() {
		return "", ErrInvalidArgument
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if target.Kind == models.KindPost && !user.IsVerifiedUser {
		return "", ErrForbidden
	}

	resolved, err := s.resolver.Resolve(target)
	if err != nil {
		return "", err
	}
	if resolved == nil {
		return "", ErrNotFound
	}

	status, err := s.actions.Toggle(userID, actionType, target)
	if err != nil {
		if errors.Is(err, repositories.ErrToggleContention) {
			return "", ErrConflict
		}
		return "", err
	}

	// Post-commit follow-ups. None of these may fail the toggle.
	s.counts.InvalidateActionCount(ctx, target, actionType)

	if err := s.producer.Publish(ctx, fmt.Sprintf("action-%s", target), events.ActionToggled{
		UserID:     userID,
		ActionType: actionType,
		Target:     target,
		Status:     status,
		At:         time.Now(),
	}); err != nil {
		s.log.Warn().Err(err).Str("target", target.String()).Msg("action event publish failed")
	}

	if status == models.ToggleCreated && (actionType == models.ActionLike || actionType == models.ActionFavorite) {
		s.notifier.NotifyReaction(ctx, userID, actionType, target, resolved.AuthorID)
	}

	return status, nil
}

// ListActionsByUser returns the caller's active actions, newest first.
func (s *ReactionService) ListActionsByUser(userID uint) ([]models.Action, error) {
	return s.actions.ListActionsByUser(userID)
}

// CountActions returns the number of active actions of one type against a
// target, served from cache when possible.
func (s *ReactionService) CountActions(ctx context.Context, target models.EntityRef, actionType models.ActionType) (int64, error) {
	if v, ok := s.counts.GetActionCount(ctx, target, actionType); ok {
		return v, nil
	}
	count, err := s.actions.CountActions(target, actionType)
	if err != nil {
		return 0, err
	}
	s.counts.SetActionCount(ctx, target, actionType, count)
	return count, nil
}

// HasAction reports whether the user currently has an active action of the
// given type against the target.
func (s *ReactionService) HasAction(userID uint, actionType models.ActionType, target models.EntityRef) (bool, error) {
	return s.actions.HasAction(userID, actionType, target)
}
