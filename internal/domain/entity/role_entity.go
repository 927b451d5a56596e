package entity

import (
	"errors"
	"strings"
)

// Role represents an authorization role.
// The set is closed: Admin, Instructor and Student. The zero value is not a valid role.
type Role uint8

const (
	roleUnknown Role = iota
	RoleAdmin
	RoleInstructor
	RoleStudent
)

// DefaultRole is assigned at signup when no role is requested.
const DefaultRole = RoleStudent

var ErrInvalidRole = errors.New("invalid role")

var roleNames = map[Role]string{
	RoleAdmin:      "Admin",
	RoleInstructor: "Instructor",
	RoleStudent:    "Student",
}

// ParseRole maps the wire name of a role back to its value.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return roleUnknown, ErrInvalidRole
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// JoinRoles renders roles as a comma separated list, e.g. "Admin, Instructor".
func JoinRoles(roles []Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}
