package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// maxIDCardBytes caps student-ID image uploads at 5 MiB.
const maxIDCardBytes = 5 << 20

// VerificationService handles the student-identity upload flow: image bytes
// go to the blob store, a pending metadata row to Postgres, and the user's
// submission timestamp is stamped. Review of the submission happens out of
// band.
type VerificationService struct {
	uploads repositories.UploadRepository
	blobs   repositories.BlobRepository
	users   repositories.UserRepository
	log     zerolog.Logger
}

// NewVerificationService wires the verification service.
func NewVerificationService(
	uploads repositories.UploadRepository,
	blobs repositories.BlobRepository,
	users repositories.UserRepository,
	log zerolog.Logger,
) *VerificationService {
	return &VerificationService{uploads: uploads, blobs: blobs, users: users, log: log}
}

// SubmitIDCard stores one student-ID image for review. Already-verified
// users may not resubmit.
func (s *VerificationService) SubmitIDCard(ctx context.Context, userID uint, data []byte, contentType string) (*models.StudentIDUpload, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if user.IsVerifiedUser {
		return nil, ErrForbidden
	}
	if len(data) == 0 || len(data) > maxIDCardBytes {
		return nil, ErrInvalidArgument
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidArgument
	}

	blobID, err := s.blobs.SaveBlob(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upload := &models.StudentIDUpload{
		UserID:      userID,
		BlobID:      blobID,
		ContentType: contentType,
		Status:      models.VerificationPending,
		UploadedAt:  now,
	}
	if err := s.uploads.CreateUpload(upload); err != nil {
		return nil, err
	}

	if err := s.users.MarkVerificationSubmitted(userID, now); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("verification timestamp update failed")
	}
	return upload, nil
}

// LatestSubmission returns the caller's most recent upload, or NotFound when
// they have never submitted.
func (s *VerificationService) LatestSubmission(ctx context.Context, userID uint) (*models.StudentIDUpload, error) {
	upload, err := s.uploads.LatestUploadForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return upload, nil
}
