package models

import "time"

// VerificationStatus is the review state of a student-ID submission.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// StudentIDUpload is the metadata row for one student-ID image submission.
// The image bytes live in the blob store; BlobID is their hex object ID.
type StudentIDUpload struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	UserID      uint               `json:"user_id" gorm:"index"`
	BlobID      string             `json:"-" gorm:"size:64"`
	ContentType string             `json:"content_type" gorm:"size:100"`
	Status      VerificationStatus `json:"status" gorm:"size:10;default:pending"`
	UploadedAt  time.Time          `json:"uploaded_at" gorm:"index"`
}
