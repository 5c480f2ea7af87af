// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/store"
)

// Collection design:
// - collection: orders
// - docId: order id (client-generated at checkout)
// - orders are never deleted, only transitioned to a terminal status
const OrdersCollection = "orders"

// OrderRepositoryFS implements order.Repository over the generic document
// store port, so tests can swap in an in-memory store.Client.
type OrderRepositoryFS struct {
	Store store.Client
}

func NewOrderRepositoryFS(st store.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Store: st}
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r == nil || r.Store == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: store client is nil")
	}
	doc, err := r.Store.Get(ctx, OrdersCollection, strings.TrimSpace(id))
	if err != nil {
		return orderdom.Order{}, err
	}
	return DecodeOrder(doc), nil
}

func (r *OrderRepositoryFS) ListByCustomer(ctx context.Context, customerID string) ([]orderdom.Order, error) {
	return r.listWhere(ctx, "customerId", customerID)
}

func (r *OrderRepositoryFS) ListByRestaurant(ctx context.Context, restaurantID string) ([]orderdom.Order, error) {
	return r.listWhere(ctx, "restaurantId", restaurantID)
}

func (r *OrderRepositoryFS) ListByCourier(ctx context.Context, courierID string) ([]orderdom.Order, error) {
	return r.listWhere(ctx, "courierId", courierID)
}

func (r *OrderRepositoryFS) ListByStatus(ctx context.Context, status orderdom.Status) ([]orderdom.Order, error) {
	return r.listWhere(ctx, "status", string(status))
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) error {
	if r == nil || r.Store == nil {
		return errors.New("order_repository_fs: store client is nil")
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return r.Store.Create(ctx, OrdersCollection, o.ID, EncodeOrder(o))
}

func (r *OrderRepositoryFS) Patch(ctx context.Context, id string, p orderdom.Patch) error {
	if r == nil || r.Store == nil {
		return errors.New("order_repository_fs: store client is nil")
	}
	fields := EncodeOrderPatch(p)
	if len(fields) == 0 {
		return nil
	}
	return r.Store.Update(ctx, OrdersCollection, strings.TrimSpace(id), fields)
}

func (r *OrderRepositoryFS) listWhere(ctx context.Context, field, value string) ([]orderdom.Order, error) {
	if r == nil || r.Store == nil {
		return nil, errors.New("order_repository_fs: store client is nil")
	}
	docs, err := r.Store.QueryDocs(ctx, OrdersCollection, store.Query{
		Filters:   []store.Filter{{Field: field, Op: "==", Value: strings.TrimSpace(value)}},
		OrderBy:   "createdAt",
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]orderdom.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeOrder(d))
	}
	return out, nil
}
