// internal/domain/store/port.go
package store

import (
	"context"
	"errors"
)

// ========================================
// Document model
// ========================================

// Document is one raw record from the remote document store.
// Fields carries the stored values keyed by field name; the document id is
// held next to them because the store keeps it outside the field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// Filter is a simple equality/range condition ("==", "<", "<=", ">", ">=").
type Filter struct {
	Field string
	Op    string
	Value any
}

// Query bundles filters with optional ordering and a limit (0 = no limit).
type Query struct {
	Filters   []Filter
	OrderBy   string
	Ascending bool
	Limit     int
}

// ========================================
// Port
// ========================================

// Client は共有ドキュメントストアへの永続化ポート（契約）です。
// 実装はデータストア技術に依存して構いませんが、上位層からは本インターフェースのみを参照します。
type Client interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string, limit int) ([]Document, error)
	QueryDocs(ctx context.Context, collection string, q Query) ([]Document, error)

	Create(ctx context.Context, collection, id string, fields map[string]any) error
	// Update has partial-patch semantics: only the listed fields are touched.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// ========================================
// Bearer credential plumbing
// ========================================

// context key は string を使わず、衝突回避のため独自型を使用
type ctxKey struct{ name string }

var ctxKeyBearer = ctxKey{name: "bearerToken"}

// WithBearer attaches the session's bearer credential to the context. SDK
// clients that authenticate at construction time may ignore it; REST-level
// implementations read it per call.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyBearer, token)
}

func BearerFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxKeyBearer)
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ========================================
// Error taxonomy
// ========================================

var (
	// ErrUnauthorized: token invalid/expired and refresh failed.
	ErrUnauthorized = errors.New("store: unauthorized")
	// ErrForbidden: backend access rules restrict the collection; read paths
	// treat this as "no data", not as a hard error.
	ErrForbidden = errors.New("store: forbidden")
	ErrNotFound  = errors.New("store: not found")
	// ErrConflict: the store rejected a write (stale precondition etc.).
	ErrConflict = errors.New("store: conflict")
	// ErrTransport: network/timeout; retried next poll cycle.
	ErrTransport = errors.New("store: transport failure")
)

// IsNoData reports whether a read failure should be treated as an empty
// result rather than surfaced (forbidden / not-found policy).
func IsNoData(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether the next poll cycle may succeed without any
// corrective action by the caller.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransport)
}
