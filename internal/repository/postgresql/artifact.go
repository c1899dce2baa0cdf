package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geko-hr/leave-backend-go/internal/domain/artifact"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
)

type ArtifactRepository struct {
	db *database.DB
}

func NewArtifactRepository(db *database.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

func (r *ArtifactRepository) Upsert(ctx context.Context, a artifact.PdfArtifact) error {
	q := GetQuerier(ctx, r.db)

	// Regeneration keeps the current download state; only the first insert
	// sets it.
	_, err := q.Exec(ctx, `
		INSERT INTO pdf_artifacts (request_id, data, download_state, generated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (request_id) DO UPDATE
		SET data = EXCLUDED.data,
		    generated_at = NOW()
	`, a.RequestID, a.Data, a.DownloadState)
	if err != nil {
		return fmt.Errorf("upsert pdf artifact: %w", err)
	}

	return nil
}

func (r *ArtifactRepository) GetByRequestID(ctx context.Context, requestID string) (artifact.PdfArtifact, error) {
	q := GetQuerier(ctx, r.db)

	var a artifact.PdfArtifact
	err := q.QueryRow(ctx, `
		SELECT request_id, data, download_state, generated_at
		FROM pdf_artifacts
		WHERE request_id = $1
	`, requestID).Scan(&a.RequestID, &a.Data, &a.DownloadState, &a.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return artifact.PdfArtifact{}, artifact.ErrArtifactNotFound
		}
		return artifact.PdfArtifact{}, fmt.Errorf("get pdf artifact: %w", err)
	}

	return a, nil
}

func (r *ArtifactRepository) SetDownloadState(ctx context.Context, requestID string, state artifact.DownloadState) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pdf_artifacts
		SET download_state = $2
		WHERE request_id = $1
	`, requestID, state)
	if err != nil {
		return fmt.Errorf("set artifact download state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return artifact.ErrArtifactNotFound
	}

	return nil
}
