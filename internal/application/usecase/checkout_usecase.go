// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"homeplate/internal/domain/actor"
	cartdom "homeplate/internal/domain/cart"
	orderdom "homeplate/internal/domain/order"
	restdom "homeplate/internal/domain/restaurant"
)

// CheckoutUsecase turns the device-local cart into a shared-store order.
// The commission amount is locked in from the restaurant snapshot at this
// moment and never recomputed.
type CheckoutUsecase struct {
	Orders      orderdom.Repository
	Restaurants restdom.Repository
	Cart        *CartUsecase
	Viewer      *actor.Context

	NewID func() string
	Now   func() time.Time
}

func NewCheckoutUsecase(
	orders orderdom.Repository,
	restaurants restdom.Repository,
	cart *CartUsecase,
	viewer *actor.Context,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		Orders:      orders,
		Restaurants: restaurants,
		Cart:        cart,
		Viewer:      viewer,
		NewID:       uuid.NewString,
		Now:         time.Now,
	}
}

// Checkout creates the order with status pending and clears the cart only
// after the store accepted the create.
func (u *CheckoutUsecase) Checkout(ctx context.Context) (orderdom.Order, error) {
	if u == nil || u.Orders == nil || u.Restaurants == nil || u.Cart == nil {
		return orderdom.Order{}, errors.New("checkout_usecase: not initialized")
	}
	if u.Cart.IsEmpty() {
		return orderdom.Order{}, cartdom.ErrEmpty
	}

	rest, err := u.Restaurants.GetByID(ctx, u.Cart.RestaurantID())
	if err != nil {
		return orderdom.Order{}, err
	}

	items := make([]orderdom.LineItem, 0, len(u.Cart.Items()))
	for _, it := range u.Cart.Items() {
		items = append(items, orderdom.LineItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}

	o, err := orderdom.New(
		u.NewID(),
		u.Viewer.ID,
		rest.ID,
		items,
		rest.DeliveryFee,
		rest.CommissionRate,
		u.Now(),
	)
	if err != nil {
		return orderdom.Order{}, err
	}

	if err := u.Orders.Create(ctx, o); err != nil {
		return orderdom.Order{}, err
	}

	u.Cart.Clear()
	u.Viewer.MarkCaused(o.ID, o.StateTag())
	return o, nil
}
