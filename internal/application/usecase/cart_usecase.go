// internal/application/usecase/cart_usecase.go
package usecase

import (
	"errors"
	"log"

	cartdom "homeplate/internal/domain/cart"
)

// CartStore persists the device-local cart under a fixed storage key,
// independent of the shared store's polling cycle.
type CartStore interface {
	Load() ([]cartdom.Item, error)
	Save(items []cartdom.Item) error
}

// CartUsecase owns the customer's cart for one app lifetime (start ->
// explicit clear). It is mutated only from the intent-issuing context, never
// from a polling loop.
type CartUsecase struct {
	cart  *cartdom.Cart
	store CartStore
}

func NewCartUsecase(store CartStore) *CartUsecase {
	u := &CartUsecase{cart: cartdom.NewCart(), store: store}
	if store != nil {
		if items, err := store.Load(); err != nil {
			log.Printf("[cart] could not restore persisted cart: %v", err)
		} else if len(items) > 0 {
			u.cart = cartdom.Restore(items)
		}
	}
	return u
}

// AddToCart enforces the single-restaurant rule. On
// cart.ErrRestaurantConflict the cart is untouched and the caller must
// either ConfirmSwitch or drop the attempt.
func (u *CartUsecase) AddToCart(it cartdom.Item) error {
	if err := u.cart.Add(it); err != nil {
		return err
	}
	u.persist()
	return nil
}

// ConfirmSwitch is the explicit confirm-and-clear path after a conflict.
func (u *CartUsecase) ConfirmSwitch(it cartdom.Item) error {
	if err := u.cart.ConfirmSwitch(it); err != nil {
		return err
	}
	u.persist()
	return nil
}

func (u *CartUsecase) Remove(menuItemID string) {
	u.cart.Remove(menuItemID)
	u.persist()
}

func (u *CartUsecase) SetQuantity(menuItemID string, qty int) {
	u.cart.SetQuantity(menuItemID, qty)
	u.persist()
}

func (u *CartUsecase) Clear() {
	u.cart.Clear()
	u.persist()
}

func (u *CartUsecase) Items() []cartdom.Item { return u.cart.Items() }
func (u *CartUsecase) Subtotal() int         { return u.cart.Subtotal() }
func (u *CartUsecase) RestaurantID() string  { return u.cart.RestaurantID() }
func (u *CartUsecase) IsEmpty() bool         { return u.cart.IsEmpty() }

// IsConflict lets callers branch on the confirmation-required case.
func IsConflict(err error) bool {
	return errors.Is(err, cartdom.ErrRestaurantConflict)
}

func (u *CartUsecase) persist() {
	if u.store == nil {
		return
	}
	if err := u.store.Save(u.cart.Items()); err != nil {
		// persistence is best-effort; the in-memory cart stays authoritative
		log.Printf("[cart] persist failed: %v", err)
	}
}
