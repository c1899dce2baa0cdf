package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geko-hr/leave-backend-go/internal/domain/artifact"
	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
)

func artifactFixture() (*ArtifactManager, *fakeArtifactRepo, *fakeSignatureRepo, *fakeRenderer) {
	artifacts := newFakeArtifactRepo()
	signatures := newFakeSignatureRepo()
	users := newFakeUserRepo(
		user.User{ID: "user-1", EmployeeID: strPtr("emp-1")},
		user.User{ID: "user-lead", EmployeeID: strPtr("emp-lead")},
	)
	renderer := &fakeRenderer{output: []byte("%PDF-1.4 rendered letter")}
	return NewArtifactManager(artifacts, signatures, users, renderer), artifacts, signatures, renderer
}

func sampleRequest(status leave.Status) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:               "req-1",
		EmployeeID:       "emp-1",
		AuthorizerUserID: "user-lead",
		Status:           status,
		TotalDays:        decimal.NewFromInt(5),
		Format:           leave.FormatStandard,
		SubmittedAt:      time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestArtifactManager_GenerateStoresCompressedOpenArtifact(t *testing.T) {
	manager, artifacts, _, renderer := artifactFixture()

	req := sampleRequest(leave.StatusPending)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}

	require.NoError(t, manager.Generate(context.Background(), req, emp, false))

	stored, err := artifacts.GetByRequestID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, artifact.DownloadOpen, stored.DownloadState)
	// Stored compressed, not the raw render output.
	assert.NotEqual(t, renderer.output, stored.Data)
	assert.NotEmpty(t, stored.Data)
}

func TestArtifactManager_FetchRoundTripsTheLetter(t *testing.T) {
	manager, _, _, renderer := artifactFixture()

	req := sampleRequest(leave.StatusPending)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}
	require.NoError(t, manager.Generate(context.Background(), req, emp, false))

	actor := user.Actor{UserID: "user-1", EmployeeID: strPtr("emp-1"), Role: user.RoleEmployee}
	doc, err := manager.Fetch(context.Background(), req, actor)
	require.NoError(t, err)

	assert.Equal(t, renderer.output, doc.Data)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "leave-request-req-1.pdf", doc.FileName)
}

func TestArtifactManager_AuthorizerSignatureOnlyWhenRequested(t *testing.T) {
	manager, _, signatures, renderer := artifactFixture()

	require.NoError(t, signatures.Upsert(context.Background(), signature.Signature{
		UserID:      "user-lead",
		Image:       []byte{0x89, 0x50, 0x4e, 0x47},
		ContentType: "image/png",
	}))

	req := sampleRequest(leave.StatusPending)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}

	require.NoError(t, manager.Generate(context.Background(), req, emp, false))
	assert.Nil(t, renderer.last.AuthorizerSignature)

	require.NoError(t, manager.Generate(context.Background(), req, emp, true))
	require.NotNil(t, renderer.last.AuthorizerSignature)
	assert.Equal(t, "image/png", renderer.last.AuthorizerSignature.ContentType)
}

func TestArtifactManager_GeneratePastPendingStoresRestricted(t *testing.T) {
	manager, artifacts, _, _ := artifactFixture()

	// First insert for a request already past pending: the gate must
	// start closed.
	req := sampleRequest(leave.StatusAuthorized)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}
	require.NoError(t, manager.Generate(context.Background(), req, emp, true))

	stored, err := artifacts.GetByRequestID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, artifact.DownloadRestricted, stored.DownloadState)
}

func TestArtifactManager_RestrictClosesGateAndKeepsDataOnRegenerate(t *testing.T) {
	manager, artifacts, _, _ := artifactFixture()

	req := sampleRequest(leave.StatusAuthorized)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}
	require.NoError(t, manager.Generate(context.Background(), req, emp, false))
	require.NoError(t, manager.Restrict(context.Background(), req.ID))

	// Regenerating with the authorizer signature must not reopen the gate.
	require.NoError(t, manager.Generate(context.Background(), req, emp, true))

	stored, err := artifacts.GetByRequestID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, artifact.DownloadRestricted, stored.DownloadState)
}

func TestArtifactManager_RestrictToleratesMissingArtifact(t *testing.T) {
	manager, _, _, _ := artifactFixture()
	assert.NoError(t, manager.Restrict(context.Background(), "req-missing"))
}

func TestArtifactManager_FetchDeniedWhenRestricted(t *testing.T) {
	manager, _, _, _ := artifactFixture()

	req := sampleRequest(leave.StatusAuthorized)
	emp := employee.Employee{ID: "emp-1", FullName: "Maria Lopez"}
	require.NoError(t, manager.Generate(context.Background(), req, emp, true))
	require.NoError(t, manager.Restrict(context.Background(), req.ID))

	owner := user.Actor{UserID: "user-1", EmployeeID: strPtr("emp-1"), Role: user.RoleEmployee}
	_, err := manager.Fetch(context.Background(), req, owner)
	assert.ErrorIs(t, err, leave.ErrDocumentRestricted)

	admin := user.Actor{UserID: "user-admin", Role: user.RoleAdmin}
	doc, err := manager.Fetch(context.Background(), req, admin)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)
}

func TestCanDownload(t *testing.T) {
	employeeActor := user.Actor{UserID: "user-1", Role: user.RoleEmployee}
	hrActor := user.Actor{UserID: "user-hr", Role: user.RoleHR}

	// Pending requests are always downloadable regardless of gate state.
	assert.True(t, CanDownload(leave.StatusPending, artifact.DownloadRestricted, employeeActor))

	// Open gates stay open past pending.
	assert.True(t, CanDownload(leave.StatusAuthorized, artifact.DownloadOpen, employeeActor))

	// Restricted past pending: only the override roles get through.
	assert.False(t, CanDownload(leave.StatusAuthorized, artifact.DownloadRestricted, employeeActor))
	assert.True(t, CanDownload(leave.StatusAuthorized, artifact.DownloadRestricted, hrActor))
	assert.False(t, CanDownload(leave.StatusCompleted, artifact.DownloadRestricted, employeeActor))
}
