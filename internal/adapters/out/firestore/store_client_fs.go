// internal/adapters/out/firestore/store_client_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"homeplate/internal/domain/store"
)

// StoreClient implements store.Client on top of the Firestore SDK.
//
// The SDK authenticates at construction time, so the per-call bearer token
// in the context is not consumed here; it exists for REST-level
// implementations of the same port.
type StoreClient struct {
	Client *firestore.Client
}

func NewStoreClient(client *firestore.Client) *StoreClient {
	return &StoreClient{Client: client}
}

func (s *StoreClient) col(collection string) *firestore.CollectionRef {
	return s.Client.Collection(strings.TrimSpace(collection))
}

func (s *StoreClient) Get(ctx context.Context, collection, id string) (store.Document, error) {
	if err := s.check(collection, id); err != nil {
		return store.Document{}, err
	}
	snap, err := s.col(collection).Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		return store.Document{}, mapStoreErr(err)
	}
	return store.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *StoreClient) List(ctx context.Context, collection string, limit int) ([]store.Document, error) {
	if err := s.check(collection, "-"); err != nil {
		return nil, err
	}
	q := s.col(collection).Query
	if limit > 0 {
		q = q.Limit(limit)
	}
	return s.drain(ctx, q)
}

func (s *StoreClient) QueryDocs(ctx context.Context, collection string, sq store.Query) ([]store.Document, error) {
	if err := s.check(collection, "-"); err != nil {
		return nil, err
	}
	q := s.col(collection).Query
	for _, f := range sq.Filters {
		q = q.Where(f.Field, f.Op, f.Value)
	}
	if sq.OrderBy != "" {
		dir := firestore.Desc
		if sq.Ascending {
			dir = firestore.Asc
		}
		q = q.OrderBy(sq.OrderBy, dir)
	}
	if sq.Limit > 0 {
		q = q.Limit(sq.Limit)
	}
	return s.drain(ctx, q)
}

func (s *StoreClient) Create(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := s.check(collection, id); err != nil {
		return err
	}
	_, err := s.col(collection).Doc(strings.TrimSpace(id)).Create(ctx, fields)
	if err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// Update has partial-field patch semantics: only the listed fields are
// touched (MergeAll keeps every other stored field intact).
func (s *StoreClient) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := s.check(collection, id); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	_, err := s.col(collection).Doc(strings.TrimSpace(id)).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *StoreClient) Delete(ctx context.Context, collection, id string) error {
	if err := s.check(collection, id); err != nil {
		return err
	}
	_, err := s.col(collection).Doc(strings.TrimSpace(id)).Delete(ctx)
	if err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func (s *StoreClient) check(collection, id string) error {
	if s == nil || s.Client == nil {
		return errors.New("store_client_fs: firestore client is nil")
	}
	if strings.TrimSpace(collection) == "" {
		return errors.New("store_client_fs: collection is empty")
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("store_client_fs: id is empty")
	}
	return nil
}

func (s *StoreClient) drain(ctx context.Context, q firestore.Query) ([]store.Document, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []store.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStoreErr(err)
		}
		out = append(out, store.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return out, nil
}

// mapStoreErr translates transport-level grpc codes into the shared error
// taxonomy so upper layers never see Firestore specifics.
func mapStoreErr(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %v", store.ErrUnauthorized, err)
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %v", store.ErrForbidden, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case codes.AlreadyExists, codes.FailedPrecondition, codes.Aborted:
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrTransport, err)
	}
}
