package auth

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is carried by staff tokens. The public booking surface needs none.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleHierarchy = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	rl, ok := roleHierarchy[r]
	ml, okMin := roleHierarchy[min]
	return ok && okMin && rl >= ml
}
