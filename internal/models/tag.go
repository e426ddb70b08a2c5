package models

import "time"

// Tag is a free-form label attached to posts.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
