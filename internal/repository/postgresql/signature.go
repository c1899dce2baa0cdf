package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
)

type SignatureRepository struct {
	db *database.DB
}

func NewSignatureRepository(db *database.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

func (r *SignatureRepository) Upsert(ctx context.Context, s signature.Signature) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO signatures (user_id, image, content_type, file_name, size_bytes, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET image = EXCLUDED.image,
		    content_type = EXCLUDED.content_type,
		    file_name = EXCLUDED.file_name,
		    size_bytes = EXCLUDED.size_bytes,
		    updated_at = NOW()
	`, s.UserID, s.Image, s.ContentType, s.FileName, s.SizeBytes)
	if err != nil {
		return fmt.Errorf("upsert signature: %w", err)
	}

	return nil
}

func (r *SignatureRepository) GetByUserID(ctx context.Context, userID string) (signature.Signature, error) {
	q := GetQuerier(ctx, r.db)

	var s signature.Signature
	err := q.QueryRow(ctx, `
		SELECT user_id, image, content_type, file_name, size_bytes, updated_at
		FROM signatures
		WHERE user_id = $1
	`, userID).Scan(&s.UserID, &s.Image, &s.ContentType, &s.FileName, &s.SizeBytes, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return signature.Signature{}, signature.ErrSignatureNotFound
		}
		return signature.Signature{}, fmt.Errorf("get signature: %w", err)
	}

	return s, nil
}

func (r *SignatureRepository) Delete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM signatures WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete signature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return signature.ErrSignatureNotFound
	}

	return nil
}
