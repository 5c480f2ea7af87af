// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"time"

	"homeplate/internal/application/polling"
	"homeplate/internal/domain/actor"
	cartdom "homeplate/internal/domain/cart"
	chatdom "homeplate/internal/domain/chat"
	courierdom "homeplate/internal/domain/courier"
	orderdom "homeplate/internal/domain/order"
	restdom "homeplate/internal/domain/restaurant"
	userdom "homeplate/internal/domain/user"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// ========================================
// Repository fakes (no store round-trips in these tests)
// ========================================

type fakeOrderRepo struct {
	patches   []orderdom.Patch
	patchIDs  []string
	created   []orderdom.Order
	patchErr  error
	createErr error
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	return orderdom.Order{}, nil
}
func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]orderdom.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]orderdom.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByCourier(ctx context.Context, courierID string) ([]orderdom.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByStatus(ctx context.Context, status orderdom.Status) ([]orderdom.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) Create(ctx context.Context, o orderdom.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, o)
	return nil
}
func (f *fakeOrderRepo) Patch(ctx context.Context, id string, p orderdom.Patch) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patchIDs = append(f.patchIDs, id)
	f.patches = append(f.patches, p)
	return nil
}

type fakeChatRepo struct {
	created   []chatdom.Message
	createErr error
}

func (f *fakeChatRepo) ListByOrder(ctx context.Context, orderID string) ([]chatdom.Message, error) {
	return f.created, nil
}
func (f *fakeChatRepo) Create(ctx context.Context, m chatdom.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, m)
	return nil
}

type fakeRestaurantRepo struct {
	restaurants map[string]restdom.Restaurant
	err         error
}

func (f *fakeRestaurantRepo) GetByID(ctx context.Context, id string) (restdom.Restaurant, error) {
	if f.err != nil {
		return restdom.Restaurant{}, f.err
	}
	return f.restaurants[id], nil
}

type fakeCourierRepo struct {
	apps      map[string]courierdom.Application
	createErr error
	patched   []string
}

func newFakeCourierRepo() *fakeCourierRepo {
	return &fakeCourierRepo{apps: make(map[string]courierdom.Application)}
}

func (f *fakeCourierRepo) GetByID(ctx context.Context, id string) (courierdom.Application, error) {
	return f.apps[id], nil
}
func (f *fakeCourierRepo) ListByCourier(ctx context.Context, courierID string) ([]courierdom.Application, error) {
	var out []courierdom.Application
	for _, a := range f.apps {
		if a.CourierID == courierID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeCourierRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]courierdom.Application, error) {
	var out []courierdom.Application
	for _, a := range f.apps {
		if a.RestaurantID == restaurantID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeCourierRepo) Create(ctx context.Context, a courierdom.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.apps[a.ID] = a
	return nil
}
func (f *fakeCourierRepo) PatchStatus(ctx context.Context, id string, status courierdom.ApplicationStatus) error {
	a := f.apps[id]
	a.Status = status
	f.apps[id] = a
	f.patched = append(f.patched, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]userdom.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (userdom.User, error) {
	return f.users[id], nil
}

type fakeMailer struct {
	sent []string // "to|subject"
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, from, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

type memCartStore struct {
	items   []cartdom.Item
	saveErr error
	loadErr error
}

func (m *memCartStore) Load() ([]cartdom.Item, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}
func (m *memCartStore) Save(items []cartdom.Item) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = items
	return nil
}

// ========================================
// Session helpers (unstarted sessions apply inline)
// ========================================

func seedOrderSession(viewer *actor.Context, orders ...orderdom.Order) *polling.Session[orderdom.Order] {
	s := polling.NewSession("orders", viewer, polling.OrderReconciler(), nil, nil, nil)
	s.Apply(func(p *polling.Projection[orderdom.Order], _ *polling.PendingSet) {
		for _, o := range orders {
			p.Upsert(o.ID, o)
		}
	})
	return s
}

func newChatSession(viewer *actor.Context) *polling.Session[chatdom.Message] {
	return polling.NewSession("messages", viewer, polling.ChatReconciler(), nil, nil, nil)
}

func readyOrder(id string) orderdom.Order {
	return orderdom.Order{
		ID:           id,
		CustomerID:   "cust-1",
		RestaurantID: "rest-1",
		Items:        []orderdom.LineItem{{MenuItemID: "menu-1", Name: "Pad Thai", UnitPrice: 950, Quantity: 2}},
		Subtotal:     1900,
		DeliveryFee:  300,
		Total:        2200,
		Status:       orderdom.StatusReady,
		CreatedAt:    t0,
	}
}
