package session

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a stored role value is not recognized.
var ErrUnknownRole = errors.New("session: unknown role")

// Role is the kind of user currently driving the portal.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleDoctor
	RolePatient
	RoleLoggedPatient
)

// String returns the value persisted under the userRole key.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleDoctor:
		return "doctor"
	case RolePatient:
		return "patient"
	case RoleLoggedPatient:
		return "loggedPatient"
	default:
		return ""
	}
}

// RequiresToken reports whether the role is only valid with a stored token.
func (r Role) RequiresToken() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RoleLoggedPatient
}

// ParseRole maps a stored value back to a Role. The empty string is RoleNone.
func ParseRole(value string) (Role, error) {
	switch value {
	case "":
		return RoleNone, nil
	case "admin":
		return RoleAdmin, nil
	case "doctor":
		return RoleDoctor, nil
	case "patient":
		return RolePatient, nil
	case "loggedPatient":
		return RoleLoggedPatient, nil
	default:
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}
