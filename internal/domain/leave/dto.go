package leave

import (
	"time"

	"github.com/geko-hr/leave-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DateRange is one requested range in the submit/edit payload. Dates use
// the YYYY-MM-DD format.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SubmitRequest struct {
	Ranges           []DateRange `json:"ranges"`
	Remarks          string      `json:"remarks"`
	Format           int         `json:"format"`
	AuthorizerUserID *string     `json:"authorizer_user_id,omitempty"`
}

type EditRequest struct {
	Ranges  []DateRange `json:"ranges"`
	Remarks string      `json:"remarks"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ListFilter struct {
	EmployeeID       *string
	AuthorizerUserID *string
	Status           *Status
	Page             int
	Limit            int
}

// BalanceBreakdown is the ledger view for one employee.
type BalanceBreakdown struct {
	EmployeeID     string          `json:"employee_id"`
	AccruedDays    decimal.Decimal `json:"accrued_days"`
	HistoricalDays decimal.Decimal `json:"historical_days"`
	ReservedDays   decimal.Decimal `json:"reserved_days"`
	AvailableDays  decimal.Decimal `json:"available_days"`
}

// ParsedRange is a validated, parsed date range.
type ParsedRange struct {
	Start time.Time
	End   time.Time
}

// ParseRanges validates and parses the raw ranges: dates well-formed,
// start <= end, at least one range, no two ranges overlapping.
func ParseRanges(ranges []DateRange) ([]ParsedRange, error) {
	var errs validator.ValidationErrors

	if len(ranges) == 0 {
		errs = append(errs, validator.ValidationError{Field: "ranges", Message: "at least one date range is required"})
		return nil, errs
	}

	parsed := make([]ParsedRange, 0, len(ranges))
	for i, r := range ranges {
		start, okStart := validator.IsValidDate(r.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{Field: "ranges[" + validator.Itoa(i) + "].start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
		end, okEnd := validator.IsValidDate(r.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{Field: "ranges[" + validator.Itoa(i) + "].end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
		if okStart && okEnd {
			if end.Before(start) {
				errs = append(errs, validator.ValidationError{Field: "ranges[" + validator.Itoa(i) + "]", Message: "end date is before start date"})
			} else {
				parsed = append(parsed, ParsedRange{Start: start, End: end})
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	for i := range parsed {
		for j := i + 1; j < len(parsed); j++ {
			if !parsed[i].End.Before(parsed[j].Start) && !parsed[j].End.Before(parsed[i].Start) {
				errs = append(errs, validator.ValidationError{Field: "ranges", Message: "date ranges overlap"})
				return nil, errs
			}
		}
	}

	return parsed, nil
}

// Validate checks the submit payload shape. Balance and authorizer checks
// happen in the service.
func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseRanges(r.Ranges); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	if !DocumentFormat(r.Format).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "format", Message: "must be 1 (standard) or 2 (corporate)"})
	}
	if r.AuthorizerUserID != nil && validator.IsEmpty(*r.AuthorizerUserID) {
		errs = append(errs, validator.ValidationError{Field: "authorizer_user_id", Message: "must not be blank when provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the edit payload shape.
func (r EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseRanges(r.Ranges); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate requires a non-empty rejection reason.
func (r RejectRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "rejection reason is required"}}
	}
	return nil
}
