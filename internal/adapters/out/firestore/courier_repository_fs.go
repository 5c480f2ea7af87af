// internal/adapters/out/firestore/courier_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	courierdom "homeplate/internal/domain/courier"
	"homeplate/internal/domain/store"
)

const ApplicationsCollection = "courierApplications"

type CourierRepositoryFS struct {
	Store store.Client
}

func NewCourierRepositoryFS(st store.Client) *CourierRepositoryFS {
	return &CourierRepositoryFS{Store: st}
}

func (r *CourierRepositoryFS) GetByID(ctx context.Context, id string) (courierdom.Application, error) {
	if r == nil || r.Store == nil {
		return courierdom.Application{}, errors.New("courier_repository_fs: store client is nil")
	}
	doc, err := r.Store.Get(ctx, ApplicationsCollection, strings.TrimSpace(id))
	if err != nil {
		return courierdom.Application{}, err
	}
	return DecodeApplication(doc), nil
}

func (r *CourierRepositoryFS) ListByCourier(ctx context.Context, courierID string) ([]courierdom.Application, error) {
	return r.listWhere(ctx, "courierId", courierID)
}

func (r *CourierRepositoryFS) ListByRestaurant(ctx context.Context, restaurantID string) ([]courierdom.Application, error) {
	return r.listWhere(ctx, "restaurantId", restaurantID)
}

func (r *CourierRepositoryFS) Create(ctx context.Context, a courierdom.Application) error {
	if r == nil || r.Store == nil {
		return errors.New("courier_repository_fs: store client is nil")
	}
	return r.Store.Create(ctx, ApplicationsCollection, a.ID, EncodeApplication(a))
}

func (r *CourierRepositoryFS) PatchStatus(ctx context.Context, id string, status courierdom.ApplicationStatus) error {
	if r == nil || r.Store == nil {
		return errors.New("courier_repository_fs: store client is nil")
	}
	return r.Store.Update(ctx, ApplicationsCollection, strings.TrimSpace(id), map[string]any{
		"status": string(status),
	})
}

func (r *CourierRepositoryFS) listWhere(ctx context.Context, field, value string) ([]courierdom.Application, error) {
	if r == nil || r.Store == nil {
		return nil, errors.New("courier_repository_fs: store client is nil")
	}
	docs, err := r.Store.QueryDocs(ctx, ApplicationsCollection, store.Query{
		Filters: []store.Filter{{Field: field, Op: "==", Value: strings.TrimSpace(value)}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]courierdom.Application, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeApplication(d))
	}
	return out, nil
}
