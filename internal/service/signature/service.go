package signature

import (
	"context"
	"strings"
	"time"

	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/pkg/validator"
)

type SignatureService struct {
	signatures signature.Repository
}

func NewSignatureService(signatures signature.Repository) *SignatureService {
	return &SignatureService{signatures: signatures}
}

func (s *SignatureService) Upload(ctx context.Context, userID, fileName, contentType string, image []byte) (signature.Info, error) {
	if len(image) == 0 {
		return signature.Info{}, signature.ErrEmptyImage
	}
	if len(image) > signature.MaxImageSize {
		return signature.Info{}, signature.ErrImageTooLarge
	}
	if !validator.IsInSlice(strings.ToLower(contentType), signature.AllowedContentTypes) {
		return signature.Info{}, signature.ErrUnsupportedImageType
	}

	sig := signature.Signature{
		UserID:      userID,
		Image:       image,
		ContentType: strings.ToLower(contentType),
		FileName:    fileName,
		SizeBytes:   len(image),
		UpdatedAt:   time.Now(),
	}
	if err := s.signatures.Upsert(ctx, sig); err != nil {
		return signature.Info{}, err
	}

	return infoOf(sig), nil
}

func (s *SignatureService) Get(ctx context.Context, userID string) (signature.Info, error) {
	sig, err := s.signatures.GetByUserID(ctx, userID)
	if err != nil {
		return signature.Info{}, err
	}
	return infoOf(sig), nil
}

func (s *SignatureService) Image(ctx context.Context, userID string) (signature.Signature, error) {
	return s.signatures.GetByUserID(ctx, userID)
}

func (s *SignatureService) Delete(ctx context.Context, userID string) error {
	return s.signatures.Delete(ctx, userID)
}

func infoOf(sig signature.Signature) signature.Info {
	return signature.Info{
		UserID:      sig.UserID,
		FileName:    sig.FileName,
		ContentType: sig.ContentType,
		SizeBytes:   sig.SizeBytes,
		UpdatedAt:   sig.UpdatedAt.Format(time.RFC3339),
	}
}
