package repositories

import (
	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListByRecipient(recipientID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates the PostgreSQL implementation.
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *postgresNotificationRepository) ListByRecipient(recipientID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	q := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}
