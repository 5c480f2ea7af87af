// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"homeplate/internal/domain/store"
	userdom "homeplate/internal/domain/user"
)

const UsersCollection = "users"

type UserRepositoryFS struct {
	Store store.Client
}

func NewUserRepositoryFS(st store.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Store: st}
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	if r == nil || r.Store == nil {
		return userdom.User{}, errors.New("user_repository_fs: store client is nil")
	}
	doc, err := r.Store.Get(ctx, UsersCollection, strings.TrimSpace(id))
	if err != nil {
		return userdom.User{}, err
	}
	return DecodeUser(doc), nil
}
