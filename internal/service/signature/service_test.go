package signature

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
)

type fakeSignatureRepo struct {
	signatures map[string]signature.Signature
}

func newFakeSignatureRepo() *fakeSignatureRepo {
	return &fakeSignatureRepo{signatures: map[string]signature.Signature{}}
}

func (f *fakeSignatureRepo) Upsert(_ context.Context, s signature.Signature) error {
	f.signatures[s.UserID] = s
	return nil
}

func (f *fakeSignatureRepo) GetByUserID(_ context.Context, userID string) (signature.Signature, error) {
	s, ok := f.signatures[userID]
	if !ok {
		return signature.Signature{}, signature.ErrSignatureNotFound
	}
	return s, nil
}

func (f *fakeSignatureRepo) Delete(_ context.Context, userID string) error {
	if _, ok := f.signatures[userID]; !ok {
		return signature.ErrSignatureNotFound
	}
	delete(f.signatures, userID)
	return nil
}

func TestUpload_StoresSignature(t *testing.T) {
	repo := newFakeSignatureRepo()
	service := NewSignatureService(repo)

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	info, err := service.Upload(context.Background(), "user-1", "sig.png", "image/PNG", image)
	require.NoError(t, err)

	assert.Equal(t, "user-1", info.UserID)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, len(image), info.SizeBytes)

	stored, err := service.Image(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(image, stored.Image))
}

func TestUpload_OverwritesPrevious(t *testing.T) {
	repo := newFakeSignatureRepo()
	service := NewSignatureService(repo)

	_, err := service.Upload(context.Background(), "user-1", "old.png", "image/png", []byte("old"))
	require.NoError(t, err)
	_, err = service.Upload(context.Background(), "user-1", "new.jpg", "image/jpeg", []byte("new"))
	require.NoError(t, err)

	stored, err := service.Image(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "new.jpg", stored.FileName)
	assert.Equal(t, []byte("new"), stored.Image)
}

func TestUpload_Validation(t *testing.T) {
	service := NewSignatureService(newFakeSignatureRepo())

	_, err := service.Upload(context.Background(), "user-1", "sig.png", "image/png", nil)
	assert.ErrorIs(t, err, signature.ErrEmptyImage)

	tooLarge := make([]byte, signature.MaxImageSize+1)
	_, err = service.Upload(context.Background(), "user-1", "sig.png", "image/png", tooLarge)
	assert.ErrorIs(t, err, signature.ErrImageTooLarge)

	_, err = service.Upload(context.Background(), "user-1", "sig.pdf", "application/pdf", []byte("x"))
	assert.ErrorIs(t, err, signature.ErrUnsupportedImageType)
}

func TestDelete(t *testing.T) {
	repo := newFakeSignatureRepo()
	service := NewSignatureService(repo)

	_, err := service.Upload(context.Background(), "user-1", "sig.png", "image/png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "user-1"))
	assert.ErrorIs(t, service.Delete(context.Background(), "user-1"), signature.ErrSignatureNotFound)

	_, err = service.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, signature.ErrSignatureNotFound)
}
