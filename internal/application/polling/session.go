// internal/application/polling/session.go
package polling

import (
	"context"
	"log"
	"sync"
	"time"

	"homeplate/internal/domain/actor"
	"homeplate/internal/domain/store"
)

// ========================================
// Ports
// ========================================

// TokenProvider supplies a valid bearer credential on demand. Refresh is
// called once per poll cycle; a failure degrades to "skip this cycle".
// The token is handed to FetchFunc, which attaches it via store.WithBearer.
// SDK-authenticated store clients ignore it; REST-level implementations of
// store.Client read it per call.
type TokenProvider interface {
	CurrentToken() (string, bool)
	Refresh(ctx context.Context) (string, error)
}

// FetchFunc loads one decoded server snapshot for the session's collection.
type FetchFunc[T any] func(ctx context.Context, token string) ([]T, error)

// ========================================
// Session state
// ========================================

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// ========================================
// Session
// ========================================

// Session owns one cancellable polling loop for one (collection, actor,
// scope) triple, plus the private projection that loop reconciles into.
// All projection access from other goroutines is marshaled onto the loop
// via Apply, so the projection never sees interleaved writes.
type Session[T any] struct {
	collection string
	viewer     *actor.Context
	rec        *Reconciler[T]
	tokens     TokenProvider
	fetch      FetchFunc[T]
	mapper     Mapper[T]
	pending    *PendingSet
	grace      time.Duration

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	proj    *Projection[T]
	applyCh chan applyReq[T]

	notifyCh chan Notification
}

type applyReq[T any] struct {
	fn  func(*Projection[T], *PendingSet)
	ack chan struct{}
}

func NewSession[T any](
	collection string,
	viewer *actor.Context,
	rec *Reconciler[T],
	tokens TokenProvider,
	fetch FetchFunc[T],
	mapper Mapper[T],
) *Session[T] {
	return &Session[T]{
		collection: collection,
		viewer:     viewer,
		rec:        rec,
		tokens:     tokens,
		fetch:      fetch,
		mapper:     mapper,
		pending:    NewPendingSet(),
		grace:      DefaultGrace,
		state:      StateIdle,
		proj:       NewProjection[T](),
		notifyCh:   make(chan Notification, 64),
	}
}

func (s *Session[T]) Collection() string     { return s.collection }
func (s *Session[T]) Viewer() *actor.Context { return s.viewer }
func (s *Session[T]) Pending() *PendingSet   { return s.pending }

// Grace is the bounded period a pending mark survives after a known-good
// write that has not yet shown up in a snapshot.
func (s *Session[T]) Grace() time.Duration { return s.grace }

// Notifications exposes the intent stream consumed by the presentation side.
func (s *Session[T]) Notifications() <-chan Notification { return s.notifyCh }

func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session[T]) IsRunning() bool { return s.State() == StateRunning }

// Start launches the polling loop. Restarting an already-running session
// first stops the existing loop so two loops never race on one projection.
func (s *Session[T]) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s.Stop()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.applyCh = make(chan applyReq[T])
	s.state = StateRunning
	done := s.done
	applyCh := s.applyCh
	s.mu.Unlock()

	go s.run(ctx, interval, done, applyCh)
}

// Stop is idempotent and safe from idle, running, or stopped. Cancellation
// is observed at the next suspension point at the latest.
func (s *Session[T]) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Session[T]) run(ctx context.Context, interval time.Duration, done chan struct{}, applyCh chan applyReq[T]) {
	defer func() {
		s.mu.Lock()
		s.state = StateStopped
		s.mu.Unlock()
		close(done)
	}()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-applyCh:
			req.fn(s.proj, s.pending)
			close(req.ack)
		case <-timer.C:
			s.cycle(ctx)
			timer.Reset(interval)
		}
	}
}

// cycle runs one poll: refresh token, fetch, reconcile, map deltas.
// Read failures during a background poll degrade to "no change this cycle";
// nothing here terminates the session.
func (s *Session[T]) cycle(ctx context.Context) {
	token, err := s.tokens.Refresh(ctx)
	if err != nil {
		log.Printf("[session] %s: token refresh failed, skipping cycle: %v", s.collection, err)
		return
	}

	snapshot, err := s.fetch(ctx, token)
	if err != nil {
		if !store.IsNoData(err) {
			log.Printf("[session] %s: fetch failed, no change this cycle: %v", s.collection, err)
			return
		}
		// forbidden / not-found reads count as "no data", not as an error
		snapshot = nil
	}
	if ctx.Err() != nil {
		// cancelled while the fetch was in flight; never apply its result
		return
	}

	hadBaseline := s.proj.Baselined()
	next, deltas := s.rec.Reconcile(s.proj, snapshot, s.pending)
	s.pending.ExpireBefore(time.Now())
	s.proj = next

	if !hadBaseline || s.mapper == nil {
		return
	}
	for _, n := range s.mapper(deltas, s.viewer) {
		select {
		case s.notifyCh <- n:
		default:
			log.Printf("[session] %s: notification buffer full, dropping %q", s.collection, n.Title)
		}
	}
}

// Apply marshals fn onto the session loop so it runs between polls, never
// concurrently with reconciliation. When the loop is not running, fn runs
// inline on the caller's context (which then owns the projection).
func (s *Session[T]) Apply(fn func(*Projection[T], *PendingSet)) {
	s.mu.Lock()
	if s.state != StateRunning {
		defer s.mu.Unlock()
		fn(s.proj, s.pending)
		return
	}
	done := s.done
	applyCh := s.applyCh
	s.mu.Unlock()

	req := applyReq[T]{fn: fn, ack: make(chan struct{})}
	select {
	case applyCh <- req:
		<-req.ack
	case <-done:
		// loop exited before accepting the request
		fn(s.proj, s.pending)
	}
}

// Snapshot returns a copy of the projection ordered by creation time
// ascending, ties broken by insertion order.
func (s *Session[T]) Snapshot() []T {
	var out []T
	s.Apply(func(p *Projection[T], _ *PendingSet) {
		out = p.Sorted(s.rec.CreatedAt)
	})
	return out
}

// Lookup returns one entity from the projection by id.
func (s *Session[T]) Lookup(id string) (T, bool) {
	var (
		v  T
		ok bool
	)
	s.Apply(func(p *Projection[T], _ *PendingSet) {
		v, ok = p.Get(id)
	})
	return v, ok
}

// ========================================
// Manager
// ========================================

// Stoppable lets the manager hold sessions of different entity types.
type Stoppable interface {
	Stop()
	IsRunning() bool
}

// Manager enforces "one polling loop per (collection, actor, scope-id)".
// Registering a key again stops and replaces the previous session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Stoppable
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]Stoppable)}
}

// Key builds the uniqueness key for a session.
func Key(collection, actorID, scopeID string) string {
	return collection + "/" + actorID + "/" + scopeID
}

func (m *Manager) Register(key string, s Stoppable) {
	m.mu.Lock()
	prev := m.sessions[key]
	m.sessions[key] = s
	m.mu.Unlock()
	if prev != nil && prev != s {
		prev.Stop()
	}
}

func (m *Manager) Stop(key string) {
	m.mu.Lock()
	s := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

// StopAll stops every registered session (logout path).
func (m *Manager) StopAll() {
	m.mu.Lock()
	all := make([]Stoppable, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]Stoppable)
	m.mu.Unlock()
	for _, s := range all {
		s.Stop()
	}
}
