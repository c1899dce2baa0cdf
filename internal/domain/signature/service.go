package signature

import "context"

// Info is the signature metadata without the image payload.
type Info struct {
	UserID      string `json:"user_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	UpdatedAt   string `json:"updated_at"`
}

type Service interface {
	Upload(ctx context.Context, userID, fileName, contentType string, image []byte) (Info, error)
	Get(ctx context.Context, userID string) (Info, error)
	Image(ctx context.Context, userID string) (Signature, error)
	Delete(ctx context.Context, userID string) error
}
