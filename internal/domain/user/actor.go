package user

// Actor identifies the caller of a core operation. It is always passed
// explicitly; no operation reads identity from ambient state.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// IsPrivileged reports whether the actor sees and manages every request.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR
}

// CanAuthorize reports whether the actor may authorize or reject requests.
func (a Actor) CanAuthorize() bool {
	return a.Role == RoleApprover || a.IsPrivileged()
}

// HasArtifactOverride reports whether the actor may download restricted
// documents.
func (a Actor) HasArtifactOverride() bool {
	return a.IsPrivileged()
}

// SameEmployee reports whether the actor acts as the given employee.
func (a Actor) SameEmployee(employeeID string) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}
