// internal/application/usecase/orders_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"homeplate/internal/domain/actor"
	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/store"
	"homeplate/internal/domain/user"
)

func TestAdvanceStatusHappyPath(t *testing.T) {
	viewer := actor.New("owner-1", "Sato", user.RoleOwner)
	o := readyOrder("order-1")
	o.Status = orderdom.StatusPending
	repo := &fakeOrderRepo{}
	u := NewOrdersUsecase(repo, seedOrderSession(viewer, o), viewer)

	err := u.AdvanceStatus(context.Background(), "order-1", orderdom.StatusAccepted)
	assert.Equal(t, err, nil)

	// store got exactly the status field
	assert.Equal(t, len(repo.patches), 1)
	assert.Equal(t, repo.patchIDs[0], "order-1")
	assert.Equal(t, *repo.patches[0].Status, orderdom.StatusAccepted)
	assert.Equal(t, repo.patches[0].CourierID, (*string)(nil))

	// projection updated optimistically, grace running, causer marked
	got, _ := u.Session.Lookup("order-1")
	assert.Equal(t, got.Status, orderdom.StatusAccepted)
	assert.Equal(t, u.Session.Pending().IsPending("order-1"), true)
	assert.Equal(t, viewer.Caused("order-1", "accepted|"), true)
}

func TestAdvanceStatusIllegalNeverReachesStore(t *testing.T) {
	viewer := actor.New("owner-1", "Sato", user.RoleOwner)
	o := readyOrder("order-1")
	o.Status = orderdom.StatusPending
	repo := &fakeOrderRepo{}
	u := NewOrdersUsecase(repo, seedOrderSession(viewer, o), viewer)

	err := u.AdvanceStatus(context.Background(), "order-1", orderdom.StatusDelivered)
	assert.Equal(t, errors.Is(err, orderdom.ErrIllegalTransition), true)
	assert.Equal(t, len(repo.patches), 0)

	got, _ := u.Session.Lookup("order-1")
	assert.Equal(t, got.Status, orderdom.StatusPending)
	assert.Equal(t, u.Session.Pending().IsPending("order-1"), false)
}

func TestAdvanceStatusUnknownOrder(t *testing.T) {
	viewer := actor.New("owner-1", "Sato", user.RoleOwner)
	u := NewOrdersUsecase(&fakeOrderRepo{}, seedOrderSession(viewer), viewer)

	err := u.AdvanceStatus(context.Background(), "ghost", orderdom.StatusAccepted)
	assert.Equal(t, errors.Is(err, store.ErrNotFound), true)
}

func TestAdvanceStatusWriteFailureRollsBack(t *testing.T) {
	viewer := actor.New("owner-1", "Sato", user.RoleOwner)
	o := readyOrder("order-1")
	o.Status = orderdom.StatusPending
	repo := &fakeOrderRepo{patchErr: store.ErrTransport}
	u := NewOrdersUsecase(repo, seedOrderSession(viewer, o), viewer)

	err := u.AdvanceStatus(context.Background(), "order-1", orderdom.StatusAccepted)
	assert.Equal(t, errors.Is(err, store.ErrTransport), true)

	got, _ := u.Session.Lookup("order-1")
	assert.Equal(t, got.Status, orderdom.StatusPending)
	assert.Equal(t, u.Session.Pending().IsPending("order-1"), false)
	assert.Equal(t, viewer.Caused("order-1", "accepted|"), false)
}

func TestAcceptDeliverySetsBothFields(t *testing.T) {
	courier := actor.New("courier-7", "Suzuki", user.RoleCourier)
	repo := &fakeOrderRepo{}
	u := NewOrdersUsecase(repo, seedOrderSession(courier, readyOrder("order-1")), courier)

	err := u.AcceptDelivery(context.Background(), "order-1")
	assert.Equal(t, err, nil)

	got, _ := u.Session.Lookup("order-1")
	assert.Equal(t, got.Status, orderdom.StatusOutForDelivery)
	assert.Equal(t, got.CourierID, "courier-7")

	// both fields travel in one patch
	assert.Equal(t, len(repo.patches), 1)
	assert.Equal(t, *repo.patches[0].Status, orderdom.StatusOutForDelivery)
	assert.Equal(t, *repo.patches[0].CourierID, "courier-7")
	assert.Equal(t, courier.Caused("order-1", "out_for_delivery|courier-7"), true)
}

func TestAcceptDeliveryWriteFailureRollsBackAsUnit(t *testing.T) {
	courier := actor.New("courier-7", "Suzuki", user.RoleCourier)
	repo := &fakeOrderRepo{patchErr: store.ErrConflict}
	u := NewOrdersUsecase(repo, seedOrderSession(courier, readyOrder("order-1")), courier)

	err := u.AcceptDelivery(context.Background(), "order-1")
	assert.Equal(t, errors.Is(err, store.ErrConflict), true)

	// never a half-state: neither field survives the failure
	got, _ := u.Session.Lookup("order-1")
	assert.Equal(t, got.Status, orderdom.StatusReady)
	assert.Equal(t, got.CourierID, "")
	assert.Equal(t, u.Session.Pending().IsPending("order-1"), false)
}

func TestAcceptDeliveryTakenOrder(t *testing.T) {
	courier := actor.New("courier-7", "Suzuki", user.RoleCourier)
	o := readyOrder("order-1")
	o.CourierID = "courier-1"
	repo := &fakeOrderRepo{}
	u := NewOrdersUsecase(repo, seedOrderSession(courier, o), courier)

	err := u.AcceptDelivery(context.Background(), "order-1")
	assert.Equal(t, errors.Is(err, orderdom.ErrCourierTaken), true)
	assert.Equal(t, len(repo.patches), 0)
}

func TestCancelTerminalOrderRejected(t *testing.T) {
	viewer := actor.New("cust-1", "Tanaka", user.RoleCustomer)
	o := readyOrder("order-1")
	o.Status = orderdom.StatusDelivered
	repo := &fakeOrderRepo{}
	u := NewOrdersUsecase(repo, seedOrderSession(viewer, o), viewer)

	err := u.Cancel(context.Background(), "order-1")
	assert.Equal(t, errors.Is(err, orderdom.ErrIllegalTransition), true)
	assert.Equal(t, len(repo.patches), 0)
}

func TestActivePastSplit(t *testing.T) {
	viewer := actor.New("cust-1", "Tanaka", user.RoleCustomer)
	active := readyOrder("order-1")
	done := readyOrder("order-2")
	done.Status = orderdom.StatusDelivered
	cancelled := readyOrder("order-3")
	cancelled.Status = orderdom.StatusCancelled
	u := NewOrdersUsecase(&fakeOrderRepo{}, seedOrderSession(viewer, active, done, cancelled), viewer)

	assert.Equal(t, len(u.Orders()), 3)
	assert.Equal(t, len(u.ActiveOrders()), 1)
	assert.Equal(t, u.ActiveOrders()[0].ID, "order-1")
	assert.Equal(t, len(u.PastOrders()), 2)
}
