package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUploadRepo struct {
	uploads []*models.StudentIDUpload
	nextID  uint
}

func newFakeUploadRepo() *fakeUploadRepo { return &fakeUploadRepo{nextID: 1} }

func (r *fakeUploadRepo) CreateUpload(upload *models.StudentIDUpload) error {
	upload.ID = r.nextID
	r.nextID++
	r.uploads = append(r.uploads, upload)
	return nil
}

func (r *fakeUploadRepo) LatestUploadForUser(userID uint) (*models.StudentIDUpload, error) {
	for i := len(r.uploads) - 1; i >= 0; i-- {
		if r.uploads[i].UserID == userID {
			return r.uploads[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeBlobRepo struct {
	blobs  map[string][]byte
	nextID int
}

func newFakeBlobRepo() *fakeBlobRepo { return &fakeBlobRepo{blobs: make(map[string][]byte), nextID: 1} }

func (r *fakeBlobRepo) SaveBlob(ctx context.Context, data []byte, contentType string) (string, error) {
	id := fmt.Sprintf("blob-%d", r.nextID)
	r.nextID++
	r.blobs[id] = data
	return id, nil
}

func (r *fakeBlobRepo) GetBlob(ctx context.Context, id string) ([]byte, string, error) {
	data, ok := r.blobs[id]
	if !ok {
		return nil, "", gorm.ErrRecordNotFound
	}
	return data, "image/jpeg", nil
}

var (
	_ repositories.UploadRepository = (*fakeUploadRepo)(nil)
	_ repositories.BlobRepository   = (*fakeBlobRepo)(nil)
)

type verificationFixture struct {
	users   *fakeUserRepo
	uploads *fakeUploadRepo
	blobs   *fakeBlobRepo
	svc     *VerificationService
}

func newVerificationFixture() *verificationFixture {
	f := &verificationFixture{
		users:   newFakeUserRepo(),
		uploads: newFakeUploadRepo(),
		blobs:   newFakeBlobRepo(),
	}
	f.svc = NewVerificationService(f.uploads, f.blobs, f.users, zerolog.Nop())
	return f
}

func TestSubmitIDCard(t *testing.T) {
	f := newVerificationFixture()
	user := f.users.addUser(false)

	upload, err := f.svc.SubmitIDCard(context.Background(), user.ID, []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, upload.Status)
	assert.Equal(t, user.ID, upload.UserID)
	assert.Contains(t, f.blobs.blobs, upload.BlobID)
	require.NotNil(t, user.VerificationSubmittedAt)
	assert.Equal(t, upload.UploadedAt, *user.VerificationSubmittedAt)
}

func TestSubmitIDCardRejections(t *testing.T) {
	f := newVerificationFixture()
	verified := f.users.addUser(true)
	pending := f.users.addUser(false)

	_, err := f.svc.SubmitIDCard(context.Background(), 999, []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.SubmitIDCard(context.Background(), verified.ID, []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.SubmitIDCard(context.Background(), pending.ID, nil, "image/png")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.SubmitIDCard(context.Background(), pending.ID, make([]byte, maxIDCardBytes+1), "image/png")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.SubmitIDCard(context.Background(), pending.ID, []byte("not an image"), "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Empty(t, f.uploads.uploads)
}

func TestLatestSubmission(t *testing.T) {
	f := newVerificationFixture()
	user := f.users.addUser(false)

	_, err := f.svc.LatestSubmission(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SubmitIDCard(context.Background(), user.ID, []byte("first"), "image/jpeg")
	require.NoError(t, err)
	second, err := f.svc.SubmitIDCard(context.Background(), user.ID, []byte("second"), "image/jpeg")
	require.NoError(t, err)

	latest, err := f.svc.LatestSubmission(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}
