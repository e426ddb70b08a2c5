package repositories

import (
	"github.com/campushub/backend/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	GetCategoryByID(id uint) (*models.Category, error)
	ListCategories() ([]models.Category, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	CreateTag(tag *models.Tag) error
	ListTags() ([]models.Tag, error)
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *PostgresCategoryRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresCategoryRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *PostgresTagRepository) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}
