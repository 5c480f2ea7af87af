// internal/domain/courier/entity.go
package courier

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Application status
// ========================================

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func IsValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseStatus collapses unrecognized raw values to StatusPending.
func ParseStatus(raw string) ApplicationStatus {
	s := ApplicationStatus(strings.TrimSpace(strings.ToLower(raw)))
	if IsValidStatus(s) {
		return s
	}
	return StatusPending
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID           = errors.New("courier: invalid id")
	ErrInvalidCourierID    = errors.New("courier: invalid courierId")
	ErrInvalidRestaurantID = errors.New("courier: invalid restaurantId")
	ErrAlreadyDecided      = errors.New("courier: application already decided")
)

// ========================================
// Entity (shared-store document)
// ========================================

// Application is one courier-to-restaurant application. Created once per
// pair; immutable except for status, which only the restaurant owner moves.
type Application struct {
	ID           string
	CourierID    string
	RestaurantID string
	Status       ApplicationStatus
	CreatedAt    time.Time
}

func NewApplication(id, courierID, restaurantID string, now time.Time) (Application, error) {
	a := Application{
		ID:           strings.TrimSpace(id),
		CourierID:    strings.TrimSpace(courierID),
		RestaurantID: strings.TrimSpace(restaurantID),
		Status:       StatusPending,
		CreatedAt:    now.UTC(),
	}
	if a.ID == "" {
		return Application{}, ErrInvalidID
	}
	if a.CourierID == "" {
		return Application{}, ErrInvalidCourierID
	}
	if a.RestaurantID == "" {
		return Application{}, ErrInvalidRestaurantID
	}
	return a, nil
}

// Decide moves pending -> approved/rejected. A decided application never
// changes again.
func (a *Application) Decide(target ApplicationStatus) error {
	if target != StatusApproved && target != StatusRejected {
		return ErrAlreadyDecided
	}
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}
	a.Status = target
	return nil
}
