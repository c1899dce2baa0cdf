package signature

import "context"

// Repository - interface for the signatures table
type Repository interface {
	Upsert(ctx context.Context, s Signature) error
	GetByUserID(ctx context.Context, userID string) (Signature, error)
	Delete(ctx context.Context, userID string) error
}
