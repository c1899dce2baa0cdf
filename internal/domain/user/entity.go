package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // System administration - full access
	RoleHR       Role = "hr"       // Human resources - manages employees and requests
	RoleApprover Role = "approver" // Team lead / sub-team lead - authorizes requests
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user holds the administrative role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPrivileged checks if user can see and manage every request
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

// CanAuthorize checks if user can authorize or reject requests
func (u *User) CanAuthorize() bool {
	return u.Role == RoleApprover || u.IsPrivileged()
}

// HasArtifactOverride checks if user may download restricted documents
func (u *User) HasArtifactOverride() bool {
	return u.IsPrivileged()
}
