package valueobject

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the capability an Actor holds within the engine.
type Role struct {
	value string
}

var (
	RoleAdmin    = Role{"admin"}
	RoleBorrower = Role{"borrower"}
	RoleLender   = Role{"lender"}
)

var validRoles = map[string]Role{
	"admin":    RoleAdmin,
	"borrower": RoleBorrower,
	"lender":   RoleLender,
}

func NewRole(s string) (Role, error) {
	r, ok := validRoles[s]
	if !ok {
		return Role{}, Validationf("unknown role: %q", s)
	}
	return r, nil
}

func (r Role) String() string { return r.value }

// Actor is the explicit identity on whose behalf an operation runs.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func NewActor(userID uuid.UUID, role Role) (Actor, error) {
	if userID == uuid.Nil {
		return Actor{}, Validationf("actor user ID is required")
	}
	if role == (Role{}) {
		return Actor{}, Validationf("actor role is required")
	}
	return Actor{UserID: userID, Role: role}, nil
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Owns reports whether the actor is the subject identified by ownerID.
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.UserID != uuid.Nil && a.UserID == ownerID
}

// RequireAdmin returns ErrUnauthorized unless the actor holds the admin role.
func (a Actor) RequireAdmin(action string) error {
	if !a.IsAdmin() {
		return fmt.Errorf("%w: %s requires admin role, actor %s has %q", ErrUnauthorized, action, a.UserID, a.Role)
	}
	return nil
}

// RequireOwner returns ErrUnauthorized unless the actor is ownerID.
func (a Actor) RequireOwner(ownerID uuid.UUID, action string) error {
	if !a.Owns(ownerID) {
		return fmt.Errorf("%w: %s is restricted to the submission owner", ErrUnauthorized, action)
	}
	return nil
}
