// internal/adapters/out/firestore/chat_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	chatdom "homeplate/internal/domain/chat"
	"homeplate/internal/domain/store"
)

// Collection design:
// - collection: messages (flat, filtered by orderId)
// - docId: client-generated UUID so the optimistic copy and the confirmed
//   copy are the same record
const MessagesCollection = "messages"

type ChatRepositoryFS struct {
	Store store.Client
}

func NewChatRepositoryFS(st store.Client) *ChatRepositoryFS {
	return &ChatRepositoryFS{Store: st}
}

func (r *ChatRepositoryFS) ListByOrder(ctx context.Context, orderID string) ([]chatdom.Message, error) {
	if r == nil || r.Store == nil {
		return nil, errors.New("chat_repository_fs: store client is nil")
	}
	docs, err := r.Store.QueryDocs(ctx, MessagesCollection, store.Query{
		Filters:   []store.Filter{{Field: "orderId", Op: "==", Value: strings.TrimSpace(orderID)}},
		OrderBy:   "createdAt",
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]chatdom.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, DecodeMessage(d))
	}
	return out, nil
}

func (r *ChatRepositoryFS) Create(ctx context.Context, m chatdom.Message) error {
	if r == nil || r.Store == nil {
		return errors.New("chat_repository_fs: store client is nil")
	}
	return r.Store.Create(ctx, MessagesCollection, m.ID, EncodeMessage(m))
}
