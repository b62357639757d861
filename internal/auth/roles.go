package auth

import (
	"errors"
	"fmt"
)

// Role is the closed set of authorization levels. Role strings arriving from
// the outside must pass ParseRole before they touch persistence.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleCollaborator Role = "Collaborator"
	RoleScientist    Role = "Scientist"
)

// DefaultRole is assigned to newly provisioned users.
const DefaultRole = RoleCollaborator

// ErrInvalidRole indicates a role value outside the closed set.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates an externally supplied role string.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleCollaborator, RoleScientist:
		return Role(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

// CanValidate reports whether the role may close out analysis records.
func (r Role) CanValidate() bool {
	return r == RoleScientist || r == RoleAdmin
}

// CanReadAll reports whether the role sees every analysis record.
// Collaborators are restricted to records they submitted themselves.
func (r Role) CanReadAll() bool {
	return r == RoleScientist || r == RoleAdmin
}

// IsAdmin reports whether the role may administer users.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is an authenticated actor.
type Identity struct {
	UserID string
	Role   Role
}
