package models

import "time"

// Category groups posts. Categories may nest one level deep through ParentID.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	ParentID    *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty"`
	ParentID    *uint  `json:"parent_id,omitempty"`
}
