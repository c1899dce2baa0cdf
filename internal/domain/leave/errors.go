package leave

import "errors"

var (
	ErrRequestNotFound = errors.New("leave request not found")

	// Validation failures, user-correctable.
	ErrInsufficientBalance       = errors.New("insufficient leave balance")
	ErrZeroDayNotBirthday        = errors.New("requested range contains no chargeable days")
	ErrInvalidDateRange          = errors.New("invalid date range")
	ErrOverlappingRanges         = errors.New("date ranges overlap within the request")
	ErrNoDetailRanges            = errors.New("at least one date range is required")
	ErrInvalidDocumentFormat     = errors.New("invalid document format")
	ErrManualSelectionRequired   = errors.New("no team authorizer found, manual selection required")
	ErrAuthorizerUserNotResolved = errors.New("authorizer has no user account")

	// State conflicts, retryable after observing the new state.
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrNotCancellable   = errors.New("leave request can no longer be cancelled")
	ErrNotEditable      = errors.New("leave request can only be edited while pending")

	// Capability failures.
	ErrEmployeeIdentityRequired = errors.New("acting employee identity required")
	ErrNotRequestOwner          = errors.New("not the owner of this leave request")
	ErrNotAuthorizer            = errors.New("not the authorizer of this leave request")
	ErrDocumentRestricted       = errors.New("leave request document is restricted")
)
