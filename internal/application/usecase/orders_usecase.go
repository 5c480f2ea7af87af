// internal/application/usecase/orders_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"homeplate/internal/application/polling"
	"homeplate/internal/domain/actor"
	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/store"
)

// OrdersUsecase issues the advanceStatus / acceptDelivery intents against
// the viewer's order projection. Preconditions are checked against the
// in-memory current state; illegal requests never reach the store.
type OrdersUsecase struct {
	Repo    orderdom.Repository
	Session *polling.Session[orderdom.Order]
	Viewer  *actor.Context
}

func NewOrdersUsecase(repo orderdom.Repository, session *polling.Session[orderdom.Order], viewer *actor.Context) *OrdersUsecase {
	return &OrdersUsecase{Repo: repo, Session: session, Viewer: viewer}
}

// AdvanceStatus moves an order to target after the state-machine legality
// check. The local projection is patched optimistically and rolled back as a
// unit if the store write fails.
func (u *OrdersUsecase) AdvanceStatus(ctx context.Context, orderID string, target orderdom.Status) error {
	if u == nil || u.Repo == nil || u.Session == nil {
		return errors.New("orders_usecase: not initialized")
	}

	prev, ok := u.Session.Lookup(orderID)
	if !ok {
		return fmt.Errorf("%w: order %s not in projection", store.ErrNotFound, orderID)
	}

	updated := prev
	if err := updated.AdvanceTo(target); err != nil {
		// PreconditionFailed-class: surfaced immediately, never sent out
		return err
	}

	u.Session.Apply(func(p *polling.Projection[orderdom.Order], pending *polling.PendingSet) {
		p.Upsert(updated.ID, updated)
		pending.Mark(updated.ID)
	})

	if err := u.Repo.Patch(ctx, orderID, orderdom.Patch{Status: &updated.Status}); err != nil {
		u.rollback(prev)
		return err
	}

	u.Session.Pending().MarkSucceeded(orderID, u.Session.Grace())
	u.Viewer.MarkCaused(orderID, updated.StateTag())
	return nil
}

// Cancel transitions any non-terminal order to cancelled.
func (u *OrdersUsecase) Cancel(ctx context.Context, orderID string) error {
	return u.AdvanceStatus(ctx, orderID, orderdom.StatusCancelled)
}

// AcceptDelivery sets courierId and advances ready -> out_for_delivery as
// one unit from the courier's perspective. A failed write rolls both fields
// back together; the UI never sees a half-state after this returns.
func (u *OrdersUsecase) AcceptDelivery(ctx context.Context, orderID string) error {
	if u == nil || u.Repo == nil || u.Session == nil {
		return errors.New("orders_usecase: not initialized")
	}

	prev, ok := u.Session.Lookup(orderID)
	if !ok {
		return fmt.Errorf("%w: order %s not in projection", store.ErrNotFound, orderID)
	}

	updated := prev
	if err := updated.AssignCourier(u.Viewer.ID); err != nil {
		return err
	}

	u.Session.Apply(func(p *polling.Projection[orderdom.Order], pending *polling.PendingSet) {
		p.Upsert(updated.ID, updated)
		pending.Mark(updated.ID)
	})

	patch := orderdom.Patch{Status: &updated.Status, CourierID: &updated.CourierID}
	if err := u.Repo.Patch(ctx, orderID, patch); err != nil {
		u.rollback(prev)
		return err
	}

	u.Session.Pending().MarkSucceeded(orderID, u.Session.Grace())
	u.Viewer.MarkCaused(orderID, updated.StateTag())
	return nil
}

// Orders is the full ordered view.
func (u *OrdersUsecase) Orders() []orderdom.Order {
	return u.Session.Snapshot()
}

// ActiveOrders excludes terminal statuses.
func (u *OrdersUsecase) ActiveOrders() []orderdom.Order {
	var out []orderdom.Order
	for _, o := range u.Session.Snapshot() {
		if !orderdom.IsTerminal(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// PastOrders holds delivered and cancelled orders only.
func (u *OrdersUsecase) PastOrders() []orderdom.Order {
	var out []orderdom.Order
	for _, o := range u.Session.Snapshot() {
		if orderdom.IsTerminal(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

func (u *OrdersUsecase) rollback(prev orderdom.Order) {
	u.Session.Apply(func(p *polling.Projection[orderdom.Order], pending *polling.PendingSet) {
		p.Upsert(prev.ID, prev)
		pending.Confirm(prev.ID)
	})
}
