// internal/adapters/out/firestore/restaurant_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	restdom "homeplate/internal/domain/restaurant"
	"homeplate/internal/domain/store"
)

const RestaurantsCollection = "restaurants"

type RestaurantRepositoryFS struct {
	Store store.Client
}

func NewRestaurantRepositoryFS(st store.Client) *RestaurantRepositoryFS {
	return &RestaurantRepositoryFS{Store: st}
}

func (r *RestaurantRepositoryFS) GetByID(ctx context.Context, id string) (restdom.Restaurant, error) {
	if r == nil || r.Store == nil {
		return restdom.Restaurant{}, errors.New("restaurant_repository_fs: store client is nil")
	}
	doc, err := r.Store.Get(ctx, RestaurantsCollection, strings.TrimSpace(id))
	if err != nil {
		return restdom.Restaurant{}, err
	}
	return DecodeRestaurant(doc), nil
}
