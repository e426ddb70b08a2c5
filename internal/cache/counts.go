package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	actionCountTTL = 24 * time.Hour
	unreadTTL      = 10 * time.Minute

	actionCountKeyPrefix = "action:cnt"
	unreadKeyPrefix      = "notif:unread"
)

// Counts caches reaction counts per target and unread notification counts
// per user. Writers invalidate, readers lazily rebuild from the database.
// Every method is best-effort: a nil *Counts or an unreachable Redis just
// turns the cache off.
type Counts struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewCounts creates a cache over the given client.
func NewCounts(rdb *redis.Client, log zerolog.Logger) *Counts {
	return &Counts{rdb: rdb, log: log}
}

func actionCountKey(target models.EntityRef, actionType models.ActionType) string {
	return fmt.Sprintf("%s:%s:%d:%s", actionCountKeyPrefix, target.Kind, target.ID, actionType)
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("%s:%d", unreadKeyPrefix, userID)
}

// GetActionCount returns the cached count and whether it was present.
func (c *Counts) GetActionCount(ctx context.Context, target models.EntityRef, actionType models.ActionType) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, actionCountKey(target, actionType)).Int64()
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetActionCount backfills the count after a database read.
func (c *Counts) SetActionCount(ctx context.Context, target models.EntityRef, actionType models.ActionType, v int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, actionCountKey(target, actionType), v, actionCountTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("target", target.String()).Msg("action count cache set failed")
	}
}

// InvalidateActionCount drops the count key after a toggle; the read side
// rebuilds it.
func (c *Counts) InvalidateActionCount(ctx context.Context, target models.EntityRef, actionType models.ActionType) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, actionCountKey(target, actionType)).Err(); err != nil {
		c.log.Warn().Err(err).Str("target", target.String()).Msg("action count cache invalidate failed")
	}
}

// GetUnreadCount returns the cached unread notification count.
func (c *Counts) GetUnreadCount(ctx context.Context, userID uint) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetUnreadCount backfills the unread count.
func (c *Counts) SetUnreadCount(ctx context.Context, userID uint, v int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, unreadKey(userID), v, unreadTTL).Err(); err != nil {
		c.log.Warn().Err(err).Uint("user_id", userID).Msg("unread count cache set failed")
	}
}

// InvalidateUnread drops the unread counter when a notification is emitted
// or read.
func (c *Counts) InvalidateUnread(ctx context.Context, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, unreadKey(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Uint("user_id", userID).Msg("unread count cache invalidate failed")
	}
}
