package leave

import (
	"context"
	"errors"

	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
)

// Resolver picks the authorizer for a new request. An explicit choice is
// trusted verbatim; otherwise the employee's team is walked for the first
// team lead, then the first sub-team lead, excluding the requester.
type Resolver struct {
	employees employee.Repository
	users     user.Repository
}

func NewResolver(employees employee.Repository, users user.Repository) *Resolver {
	return &Resolver{employees: employees, users: users}
}

func (r *Resolver) Resolve(ctx context.Context, emp employee.Employee, explicitUserID *string) (user.User, error) {
	if explicitUserID != nil && *explicitUserID != "" {
		chosen, err := r.users.GetByID(ctx, *explicitUserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return user.User{}, leave.ErrAuthorizerUserNotResolved
			}
			return user.User{}, err
		}
		return chosen, nil
	}

	if emp.TeamID == nil {
		return user.User{}, leave.ErrManualSelectionRequired
	}

	members, err := r.employees.GetTeamMembers(ctx, *emp.TeamID)
	if err != nil {
		return user.User{}, err
	}

	lead := pickAuthorizer(members, emp.ID)
	if lead == nil {
		return user.User{}, leave.ErrManualSelectionRequired
	}

	// The authorizer field stores a user identity, not an employee one.
	authorizer, err := r.users.GetByEmployeeID(ctx, lead.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, leave.ErrAuthorizerUserNotResolved
		}
		return user.User{}, err
	}

	return authorizer, nil
}

func pickAuthorizer(members []employee.TeamMember, requesterID string) *employee.TeamMember {
	for _, role := range []employee.TeamRole{employee.TeamRoleLead, employee.TeamRoleSubLead} {
		for i := range members {
			if members[i].EmployeeID == requesterID {
				continue
			}
			if members[i].Role == role {
				return &members[i]
			}
		}
	}
	return nil
}
