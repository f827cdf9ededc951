package staff

import "errors"

var ErrInvalidRole = errors.New("invalid staff role")

// Role comes from the platform-issued token. GM staff answer availability,
// store staff decide requests, admins can do both.
type Role string

const (
	RoleGM    Role = "gm"
	RoleStore Role = "store"
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	role := Role(s)
	switch role {
	case RoleGM, RoleStore, RoleAdmin:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
