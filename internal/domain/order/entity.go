// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Line items
// ========================================

// LineItem is stored inside Order.Items as an ordered snapshot of what was
// purchased: [menuItemId, name, unitPrice, qty], prices in minor units.
type LineItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int    `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

func (it LineItem) Total() int {
	return it.UnitPrice * it.Quantity
}

// ========================================
// Entity (shared-store document)
// ========================================

type Order struct {
	ID           string
	CustomerID   string
	RestaurantID string
	// CourierID is empty until a courier accepts the delivery.
	CourierID string

	Items []LineItem

	Subtotal    int
	DeliveryFee int
	// CommissionAmount is derived from the restaurant commission rate at
	// order-creation time and is immutable thereafter.
	CommissionAmount int
	NetAmount        int
	Total            int

	Status    Status
	CreatedAt time.Time
}

// Patch represents a partial update of the mutable Order fields.
// A nil field means "no change".
type Patch struct {
	Status    *Status
	CourierID *string
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID           = errors.New("order: invalid id")
	ErrInvalidCustomerID   = errors.New("order: invalid customerId")
	ErrInvalidRestaurantID = errors.New("order: invalid restaurantId")
	ErrInvalidItems        = errors.New("order: invalid items")
	ErrInvalidAmounts      = errors.New("order: invalid amounts")
	ErrInvalidStatus       = errors.New("order: invalid status")
	ErrInvalidCreatedAt    = errors.New("order: invalid createdAt")

	// ErrIllegalTransition rejects a locally issued status advance whose
	// target does not legally follow the in-memory current status.
	ErrIllegalTransition = errors.New("order: illegal status transition")
	// ErrCourierTaken rejects an accept-delivery request when courierId is
	// already non-empty in the local projection.
	ErrCourierTaken = errors.New("order: courier already assigned")
)

// ========================================
// Constructor
// ========================================

func New(
	id string,
	customerID string,
	restaurantID string,
	items []LineItem,
	deliveryFee int,
	commissionRate float64,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:           strings.TrimSpace(id),
		CustomerID:   strings.TrimSpace(customerID),
		RestaurantID: strings.TrimSpace(restaurantID),
		Items:        normalizeItems(items),
		DeliveryFee:  deliveryFee,
		Status:       StatusPending,
		CreatedAt:    createdAt.UTC(),
	}
	o.Subtotal = sumItems(o.Items)
	o.CommissionAmount = int(float64(o.Subtotal) * commissionRate)
	o.NetAmount = o.Subtotal - o.CommissionAmount
	o.Total = o.Subtotal + o.DeliveryFee

	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// AdvanceTo applies a locally issued status change after checking legality.
// Remote snapshots bypass this; the backend already accepted those.
func (o *Order) AdvanceTo(target Status) error {
	if !IsValidStatus(target) {
		return ErrInvalidStatus
	}
	if !CanTransition(o.Status, target) {
		return ErrIllegalTransition
	}
	o.Status = target
	return nil
}

// AssignCourier sets the courier and advances ready -> out_for_delivery as
// one unit. Callers that see the store write fail must roll both fields back
// together via RollbackCourier.
func (o *Order) AssignCourier(courierID string) error {
	cid := strings.TrimSpace(courierID)
	if cid == "" {
		return ErrInvalidID
	}
	if o.CourierID != "" {
		return ErrCourierTaken
	}
	if o.Status != StatusReady {
		return ErrIllegalTransition
	}
	o.CourierID = cid
	o.Status = StatusOutForDelivery
	return nil
}

// RollbackCourier undoes AssignCourier after a failed store write, restoring
// both fields so no half-state stays visible to the UI.
func (o *Order) RollbackCourier() {
	o.CourierID = ""
	o.Status = StatusReady
}

// StateTag is the compact status+courier tag compared across snapshots; a
// courier grab changes the tag even when the status alone would not.
func (o Order) StateTag() string {
	return string(o.Status) + "|" + o.CourierID
}

func (o Order) Validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.CustomerID == "" {
		return ErrInvalidCustomerID
	}
	if o.RestaurantID == "" {
		return ErrInvalidRestaurantID
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	if o.Subtotal < 0 || o.DeliveryFee < 0 || o.CommissionAmount < 0 {
		return ErrInvalidAmounts
	}
	if o.Total != o.Subtotal+o.DeliveryFee {
		return ErrInvalidAmounts
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.MenuItemID = strings.TrimSpace(it.MenuItemID)
		it.Name = strings.TrimSpace(it.Name)
		if it.MenuItemID == "" || it.Quantity <= 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}

func sumItems(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Total()
	}
	return total
}
