package response

import (
	"errors"
	"net/http"

	"github.com/geko-hr/leave-backend-go/internal/domain/artifact"
	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User / auth domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrApproverAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrTeamNotFound):
		NotFound(w, "Team not found")

	// Leave request validation failures
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrZeroDayNotBirthday),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrOverlappingRanges),
		errors.Is(err, leave.ErrNoDetailRanges),
		errors.Is(err, leave.ErrInvalidDocumentFormat),
		errors.Is(err, leave.ErrManualSelectionRequired),
		errors.Is(err, leave.ErrAuthorizerUserNotResolved):
		BadRequest(w, err.Error(), nil)

	// Leave request state conflicts
	case errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrNotCancellable),
		errors.Is(err, leave.ErrNotEditable):
		Conflict(w, err.Error())

	// Leave request capability failures
	case errors.Is(err, leave.ErrNotRequestOwner),
		errors.Is(err, leave.ErrNotAuthorizer),
		errors.Is(err, leave.ErrEmployeeIdentityRequired),
		errors.Is(err, leave.ErrDocumentRestricted):
		Forbidden(w, err.Error())

	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")

	// Artifact / signature domain errors
	case errors.Is(err, artifact.ErrArtifactNotFound):
		NotFound(w, "Request document not found")
	case errors.Is(err, signature.ErrSignatureNotFound):
		NotFound(w, "Signature not found")
	case errors.Is(err, signature.ErrUnsupportedImageType),
		errors.Is(err, signature.ErrImageTooLarge),
		errors.Is(err, signature.ErrEmptyImage):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
