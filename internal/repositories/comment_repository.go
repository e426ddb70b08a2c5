package repositories

import (
	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListCommentsByPost(postID uint, page, limit int) ([]models.Comment, int64, error)
	RepliesCount(commentID uint) (int64, error)
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByPost returns top-level comments and replies alike, newest
// first, paginated.
func (r *PostgresCommentRepository) ListCommentsByPost(postID uint, page, limit int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *PostgresCommentRepository) RepliesCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
