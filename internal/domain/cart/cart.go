// internal/domain/cart/cart.go
package cart

import (
	"errors"
	"strings"
)

// ========================================
// Errors
// ========================================

var (
	ErrInvalidItem = errors.New("cart: invalid item")
	ErrEmpty       = errors.New("cart: empty")
	// ErrRestaurantConflict is raised when an add would mix restaurants.
	// The cart is left untouched; the caller must either ConfirmSwitch
	// (clear + re-add) or drop the attempt. Never silently mixed.
	ErrRestaurantConflict = errors.New("cart: item belongs to another restaurant")
)

// ========================================
// Items
// ========================================

type Item struct {
	MenuItemID   string `json:"menuItemId"`
	Name         string `json:"name"`
	UnitPrice    int    `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	RestaurantID string `json:"restaurantId"`
}

// ========================================
// Cart (device-local, never in the shared store)
// ========================================

// Cart holds the customer's ordered selection. Invariant: all items in a
// non-empty cart share one restaurantId.
type Cart struct {
	items []Item
}

func NewCart() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from persisted items, dropping any item that
// violates the single-restaurant invariant against the first one.
func Restore(items []Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		_ = c.Add(it) // conflict/invalid items from stale storage are skipped
	}
	return c
}

// Add appends or merges an item. Adding from a different restaurant than the
// current cart's returns ErrRestaurantConflict without mutating anything.
func (c *Cart) Add(it Item) error {
	it.MenuItemID = strings.TrimSpace(it.MenuItemID)
	it.RestaurantID = strings.TrimSpace(it.RestaurantID)
	if it.MenuItemID == "" || it.RestaurantID == "" || it.UnitPrice < 0 {
		return ErrInvalidItem
	}
	if it.Quantity <= 0 {
		it.Quantity = 1
	}
	if rid := c.RestaurantID(); rid != "" && rid != it.RestaurantID {
		return ErrRestaurantConflict
	}
	for i := range c.items {
		if c.items[i].MenuItemID == it.MenuItemID {
			c.items[i].Quantity += it.Quantity
			return nil
		}
	}
	c.items = append(c.items, it)
	return nil
}

// ConfirmSwitch is the explicit confirm-and-clear path after
// ErrRestaurantConflict: drop the old restaurant's items, then add.
func (c *Cart) ConfirmSwitch(it Item) error {
	c.Clear()
	return c.Add(it)
}

func (c *Cart) Remove(menuItemID string) {
	id := strings.TrimSpace(menuItemID)
	out := c.items[:0]
	for _, it := range c.items {
		if it.MenuItemID != id {
			out = append(out, it)
		}
	}
	c.items = out
}

// SetQuantity sets a line's quantity; qty <= 0 removes the line.
func (c *Cart) SetQuantity(menuItemID string, qty int) {
	if qty <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.items {
		if c.items[i].MenuItemID == strings.TrimSpace(menuItemID) {
			c.items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy preserving insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// RestaurantID returns the restaurant the cart is locked to, or "" when empty.
func (c *Cart) RestaurantID() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].RestaurantID
}

func (c *Cart) Subtotal() int {
	total := 0
	for _, it := range c.items {
		total += it.UnitPrice * it.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
