package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/geko-hr/leave-backend-go/internal/domain/artifact"
	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/pkg/compress"
	"github.com/geko-hr/leave-backend-go/internal/pkg/pdf"
)

// ArtifactManager renders, compresses and stores the request letter, and
// owns its download gate.
type ArtifactManager struct {
	artifacts  artifact.Repository
	signatures signature.Repository
	users      user.Repository
	renderer   pdf.Renderer
}

func NewArtifactManager(artifacts artifact.Repository, signatures signature.Repository, users user.Repository, renderer pdf.Renderer) *ArtifactManager {
	return &ArtifactManager{
		artifacts:  artifacts,
		signatures: signatures,
		users:      users,
		renderer:   renderer,
	}
}

// Generate renders the letter and stores it compressed. The authorizer's
// signature is only embedded once the request has been authorized.
func (m *ArtifactManager) Generate(ctx context.Context, req leave.LeaveRequest, emp employee.Employee, includeAuthorizerSignature bool) error {
	data := pdf.DocumentData{
		RequestID:    req.ID,
		EmployeeName: emp.FullName,
		SubmittedAt:  req.SubmittedAt,
		TotalDays:    req.TotalDays,
		Remarks:      req.Remarks,
		Format:       req.Format,
	}
	if emp.Position != nil {
		data.Position = *emp.Position
	}
	if req.AuthorizerName != nil {
		data.AuthorizerName = *req.AuthorizerName
	}
	for _, d := range req.Details {
		data.Ranges = append(data.Ranges, pdf.RangeData{Start: d.StartDate, End: d.EndDate, Days: d.Days})
	}

	data.RequesterSignature = m.signatureForEmployee(ctx, emp.ID)
	if includeAuthorizerSignature {
		data.AuthorizerSignature = m.signatureForUser(ctx, req.AuthorizerUserID)
	}

	rendered, err := m.renderer.Render(data)
	if err != nil {
		return fmt.Errorf("render request letter: %w", err)
	}

	compressed, err := compress.Compress(rendered)
	if err != nil {
		return fmt.Errorf("compress request letter: %w", err)
	}

	// The initial state follows the lifecycle: a letter first stored for
	// a request already past pending (the submit-time render failed and
	// this is the authorize-time regeneration) must not open the gate.
	state := artifact.DownloadOpen
	if req.Status != leave.StatusPending {
		state = artifact.DownloadRestricted
	}

	return m.artifacts.Upsert(ctx, artifact.PdfArtifact{
		RequestID:     req.ID,
		Data:          compressed,
		DownloadState: state,
	})
}

// Restrict closes the download gate after authorization. A missing
// artifact row is not an error here: the letter failed to generate at
// submit, and the authorize-time regeneration stores it restricted.
func (m *ArtifactManager) Restrict(ctx context.Context, requestID string) error {
	err := m.artifacts.SetDownloadState(ctx, requestID, artifact.DownloadRestricted)
	if errors.Is(err, artifact.ErrArtifactNotFound) {
		return nil
	}
	return err
}

// Fetch returns the decompressed letter after the gate check.
func (m *ArtifactManager) Fetch(ctx context.Context, req leave.LeaveRequest, actor user.Actor) (leave.Document, error) {
	a, err := m.artifacts.GetByRequestID(ctx, req.ID)
	if err != nil {
		return leave.Document{}, err
	}

	if !CanDownload(req.Status, a.DownloadState, actor) {
		return leave.Document{}, leave.ErrDocumentRestricted
	}

	raw, err := compress.Decompress(a.Data)
	if err != nil {
		return leave.Document{}, fmt.Errorf("decompress request letter: %w", err)
	}

	return leave.Document{
		FileName:    fmt.Sprintf("leave-request-%s.pdf", req.ID),
		ContentType: "application/pdf",
		Data:        raw,
	}, nil
}

// CanDownload is the gate decision: once a request has moved past pending
// and its letter is restricted, only roles with the override may download
// it.
func CanDownload(status leave.Status, state artifact.DownloadState, actor user.Actor) bool {
	if status == leave.StatusPending {
		return true
	}
	if state != artifact.DownloadRestricted {
		return true
	}
	return actor.HasArtifactOverride()
}

func (m *ArtifactManager) signatureForEmployee(ctx context.Context, employeeID string) *pdf.SignatureImage {
	u, err := m.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil
	}
	return m.signatureForUser(ctx, u.ID)
}

func (m *ArtifactManager) signatureForUser(ctx context.Context, userID string) *pdf.SignatureImage {
	s, err := m.signatures.GetByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return &pdf.SignatureImage{Data: s.Image, ContentType: s.ContentType}
}
