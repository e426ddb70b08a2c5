package repositories

import (
	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows post listings.
type PostFilter struct {
	CategoryID *uint
	TagIDs     []uint
	Status     models.PostStatus
	Search     string
	Page       int
	Limit      int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListPosts(filter PostFilter) ([]models.Post, int64, error)
	UpdatePost(post *models.Post) error
	ReplaceTags(post *models.Post, tagIDs []uint) error
	DeletePost(id uint) error
	CommentsCount(postID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Tags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPosts(filter PostFilter) ([]models.Post, int64, error) {
	q := r.db.Model(&models.Post{})

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id IN ?", filter.TagIDs).
			Distinct("posts.*")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var posts []models.Post
	err := q.Preload("Tags").
		Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Omit("Tags").Save(post).Error
}

// ReplaceTags swaps the post's tag set for the given IDs.
func (r *PostgresPostRepository) ReplaceTags(post *models.Post, tagIDs []uint) error {
	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := r.db.Find(&tags, tagIDs).Error; err != nil {
			return err
		}
	}
	return r.db.Model(post).Association("Tags").Replace(tags)
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPostRepository) CommentsCount(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
