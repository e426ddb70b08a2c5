package repositories

import (
	"context"
	"time"

	"github.com/campushub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// UploadRepository defines the interface for student-ID submission metadata
type UploadRepository interface {
	CreateUpload(upload *models.StudentIDUpload) error
	LatestUploadForUser(userID uint) (*models.StudentIDUpload, error)
}

// BlobRepository stores and retrieves raw image bytes.
type BlobRepository interface {
	SaveBlob(ctx context.Context, data []byte, contentType string) (string, error)
	GetBlob(ctx context.Context, id string) ([]byte, string, error)
}

// PostgresUploadRepository implements UploadRepository for PostgreSQL
type PostgresUploadRepository struct {
	db *gorm.DB
}

// NewPostgresUploadRepository creates a new PostgresUploadRepository
func NewPostgresUploadRepository(db *gorm.DB) *PostgresUploadRepository {
	return &PostgresUploadRepository{db: db}
}

func (r *PostgresUploadRepository) CreateUpload(upload *models.StudentIDUpload) error {
	return r.db.Create(upload).Error
}

func (r *PostgresUploadRepository) LatestUploadForUser(userID uint) (*models.StudentIDUpload, error) {
	var upload models.StudentIDUpload
	err := r.db.Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// MongoBlobRepository implements BlobRepository on MongoDB.
type MongoBlobRepository struct {
	collection *mongo.Collection
}

// NewMongoBlobRepository creates a new MongoBlobRepository
func NewMongoBlobRepository(db *mongo.Database) *MongoBlobRepository {
	return &MongoBlobRepository{collection: db.Collection("idcard_blobs")}
}

type blobDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Data        []byte             `bson:"data"`
	ContentType string             `bson:"content_type"`
	UploadedAt  time.Time          `bson:"uploaded_at"`
}

func (r *MongoBlobRepository) SaveBlob(ctx context.Context, data []byte, contentType string) (string, error) {
	doc := blobDocument{
		Data:        data,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoBlobRepository) GetBlob(ctx context.Context, id string) ([]byte, string, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", err
	}
	var doc blobDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, "", err
	}
	return doc.Data, doc.ContentType, nil
}
