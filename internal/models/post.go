package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

// Post is a forum post. AuthorID is nullable so deleting an account keeps
// the post around with an absent author.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200"`
	Content     string     `json:"content" gorm:"type:text"`
	AuthorID    *uint      `json:"author_id,omitempty" gorm:"index"`
	IsAnonymous bool       `json:"is_anonymous" gorm:"default:false"`
	Status      PostStatus `json:"status" gorm:"size:10;default:draft;index"`
	IsPinned    bool       `json:"is_pinned" gorm:"default:false"`
	CategoryID  *uint      `json:"category_id,omitempty" gorm:"index"`
	Tags        []Tag      `json:"tags,omitempty" gorm:"many2many:post_tags;"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreatePostRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Content     string     `json:"content" validate:"required"`
	IsAnonymous bool       `json:"is_anonymous"`
	Status      PostStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID  *uint      `json:"category_id,omitempty"`
	TagIDs      []uint     `json:"tag_ids,omitempty"`
}

type UpdatePostRequest struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content     *string     `json:"content,omitempty"`
	IsAnonymous *bool       `json:"is_anonymous,omitempty"`
	Status      *PostStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	CategoryID  *uint       `json:"category_id,omitempty"`
	TagIDs      []uint      `json:"tag_ids,omitempty"`
}

// PostView is a post plus its serialized author and reaction counts.
type PostView struct {
	Post
	Author         UserCompact `json:"author"`
	LikesCount     int64       `json:"likes_count"`
	FavoritesCount int64       `json:"favorites_count"`
	CommentsCount  int64       `json:"comments_count"`
}
