package repositories

import (
	"time"

	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByOpenID(openID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string, limit int) ([]models.User, error)
	MarkVerificationSubmitted(userID uint, at time.Time) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByOpenID(openID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("open_id = ?", openID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SearchUsers matches username, nickname or student ID.
func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var users []models.User
	like := "%" + query + "%"
	err := r.db.
		Where("username ILIKE ? OR nickname ILIKE ? OR student_id ILIKE ?", like, like, like).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) MarkVerificationSubmitted(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("verification_submitted_at", at).Error
}
