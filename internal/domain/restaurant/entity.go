// internal/domain/restaurant/entity.go
package restaurant

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID      = errors.New("restaurant: invalid id")
	ErrInvalidOwnerID = errors.New("restaurant: invalid ownerId")
	ErrInvalidRate    = errors.New("restaurant: invalid commissionRate")
)

// Restaurant carries the snapshot checkout needs: the commission rate locked
// into the order at creation time and the flat delivery fee.
type Restaurant struct {
	ID             string
	OwnerID        string
	Name           string
	CommissionRate float64
	DeliveryFee    int
}

func New(id, ownerID, name string, commissionRate float64, deliveryFee int) (Restaurant, error) {
	r := Restaurant{
		ID:             strings.TrimSpace(id),
		OwnerID:        strings.TrimSpace(ownerID),
		Name:           strings.TrimSpace(name),
		CommissionRate: commissionRate,
		DeliveryFee:    deliveryFee,
	}
	if r.ID == "" {
		return Restaurant{}, ErrInvalidID
	}
	if r.OwnerID == "" {
		return Restaurant{}, ErrInvalidOwnerID
	}
	if r.CommissionRate < 0 || r.CommissionRate >= 1 {
		return Restaurant{}, ErrInvalidRate
	}
	return r, nil
}
