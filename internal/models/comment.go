package models

import "time"

// Comment is a comment on a post. ParentID points at another comment when
// this comment is a reply.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post_id" gorm:"index"`
	AuthorID    uint      `json:"author_id" gorm:"index"`
	Content     string    `json:"content" gorm:"type:text"`
	IsAnonymous bool      `json:"is_anonymous" gorm:"default:false"`
	ParentID    *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

type CreateCommentRequest struct {
	Content     string `json:"content" validate:"required,min=1,max=2000"`
	IsAnonymous bool   `json:"is_anonymous"`
	ParentID    *uint  `json:"parent_id,omitempty"`
}

// CommentView is a comment plus its serialized author and reply count.
type CommentView struct {
	Comment
	Author       UserCompact `json:"author"`
	RepliesCount int64       `json:"replies_count"`
}
