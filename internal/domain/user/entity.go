// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

// ========================================
// Role
// ========================================

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleCourier, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole maps a raw stored value to a Role. Unrecognized values collapse
// to RoleCustomer so that well-formed-but-unknown documents never crash the
// projection.
func ParseRole(raw string) Role {
	r := Role(strings.TrimSpace(strings.ToLower(raw)))
	if IsValidRole(r) {
		return r
	}
	return RoleCustomer
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID   = errors.New("user: invalid id")
	ErrInvalidRole = errors.New("user: invalid role")
)

// ========================================
// Entity
// ========================================

type User struct {
	ID          string
	DisplayName string
	Email       string
	Role        Role
}

func New(id, displayName, email string, role Role) (User, error) {
	u := User{
		ID:          strings.TrimSpace(id),
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
		Role:        role,
	}
	if u.ID == "" {
		return User{}, ErrInvalidID
	}
	if !IsValidRole(u.Role) {
		return User{}, ErrInvalidRole
	}
	return u, nil
}
