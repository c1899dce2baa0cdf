package artifact

import "context"

// Repository - interface for the pdf_artifacts table
type Repository interface {
	// Upsert stores the compressed payload for a request, replacing any
	// previous letter but keeping the current download state.
	Upsert(ctx context.Context, a PdfArtifact) error
	GetByRequestID(ctx context.Context, requestID string) (PdfArtifact, error)
	SetDownloadState(ctx context.Context, requestID string, state DownloadState) error
}
