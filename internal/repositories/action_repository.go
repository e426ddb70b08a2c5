package repositories

import (
	"errors"

	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// ErrToggleContention is returned when a toggle keeps losing races against
// concurrent toggles of the same tuple and runs out of attempts.
var ErrToggleContention = errors.New("action toggle contention")

// toggleAttempts bounds the insert/delete retry loop.
const toggleAttempts = 3

// ActionRepository defines the interface for the action ledger
type ActionRepository interface {
	Toggle(userID uint, actionType models.ActionType, target models.EntityRef) (models.ToggleStatus, error)
	ListActionsByUser(userID uint) ([]models.Action, error)
	CountActions(target models.EntityRef, actionType models.ActionType) (int64, error)
	HasAction(userID uint, actionType models.ActionType, target models.EntityRef) (bool, error)
}

// PostgresActionRepository implements ActionRepository for PostgreSQL
type PostgresActionRepository struct {
	db *gorm.DB
}

// NewPostgresActionRepository creates a new PostgresActionRepository
func NewPostgresActionRepository(db *gorm.DB) *PostgresActionRepository {
	return &PostgresActionRepository{db: db}
}

// Toggle inserts the (user, type, target) tuple, or deletes the existing row
// when the composite unique index rejects the insert. The index is the
// concurrency primitive: two racing toggles resolve to exactly one persisted
// state. A delete that hits zero rows means a concurrent toggle-off got
// there first, so the insert is retried.
func (r *PostgresActionRepository) Toggle(userID uint, actionType models.ActionType, target models.EntityRef) (models.ToggleStatus, error) {
	for i := 0; i < toggleAttempts; i++ {
		action := models.Action{
			UserID:     userID,
			ActionType: actionType,
			TargetKind: target.Kind,
			TargetID:   target.ID,
		}
		err := r.db.Create(&action).Error
		if err == nil {
			return models.ToggleCreated, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}

		res := r.db.
			Where("user_id = ? AND action_type = ? AND target_kind = ? AND target_id = ?",
				userID, actionType, target.Kind, target.ID).
			Delete(&models.Action{})
		if res.Error != nil {
			return "", res.Error
		}
		if res.RowsAffected > 0 {
			return models.ToggleDeleted, nil
		}
		// Row vanished between insert and delete; go around again.
	}
	return "", ErrToggleContention
}

func (r *PostgresActionRepository) ListActionsByUser(userID uint) ([]models.Action, error) {
	var actions []models.Action
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&actions).Error
	return actions, err
}

func (r *PostgresActionRepository) CountActions(target models.EntityRef, actionType models.ActionType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Action{}).
		Where("target_kind = ? AND target_id = ? AND action_type = ?", target.Kind, target.ID, actionType).
		Count(&count).Error
	return count, err
}

func (r *PostgresActionRepository) HasAction(userID uint, actionType models.ActionType, target models.EntityRef) (bool, error) {
	var count int64
	err := r.db.Model(&models.Action{}).
		Where("user_id = ? AND action_type = ? AND target_kind = ? AND target_id = ?",
			userID, actionType, target.Kind, target.ID).
		Count(&count).Error
	return count > 0, err
}
