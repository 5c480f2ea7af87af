// internal/application/polling/session_test.go
package polling

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"homeplate/internal/domain/actor"
	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/user"
)

type fakeTokens struct {
	token      string
	refreshErr error
	refreshes  atomic.Int64
}

func (f *fakeTokens) CurrentToken() (string, bool) {
	return f.token, f.token != ""
}

func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	f.refreshes.Add(1)
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return f.token, nil
}

func testViewer() *actor.Context {
	return actor.New("cust-1", "Tanaka", user.RoleCustomer)
}

func newOrderSession(tokens TokenProvider, fetch FetchFunc[orderdom.Order]) *Session[orderdom.Order] {
	return NewSession("orders", testViewer(), OrderReconciler(), tokens, fetch, OrderNotifications)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSessionStartStop(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	s := newOrderSession(tokens, func(ctx context.Context, token string) ([]orderdom.Order, error) {
		return nil, nil
	})
	assert.Equal(t, s.State(), StateIdle)

	s.Start(10 * time.Millisecond)
	assert.Equal(t, s.IsRunning(), true)
	waitFor(t, func() bool { return tokens.refreshes.Load() >= 2 })

	s.Stop()
	assert.Equal(t, s.State(), StateStopped)
	s.Stop() // idempotent
	assert.Equal(t, s.State(), StateStopped)

	// no cycles run after Stop returned
	n := tokens.refreshes.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, tokens.refreshes.Load(), n)
}

func TestRestartReplacesLoop(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	var fetches atomic.Int64
	s := newOrderSession(tokens, func(ctx context.Context, token string) ([]orderdom.Order, error) {
		fetches.Add(1)
		return []orderdom.Order{mkOrder("o1", orderdom.StatusPending, "", t0)}, nil
	})

	s.Start(10 * time.Millisecond)
	s.Start(10 * time.Millisecond) // stops the first loop before launching
	waitFor(t, func() bool { return fetches.Load() >= 1 })

	// projection survives the restart
	waitFor(t, func() bool {
		_, ok := s.Lookup("o1")
		return ok
	})
	s.Stop()
}

func TestTokenRefreshFailureSkipsCycle(t *testing.T) {
	tokens := &fakeTokens{token: "tok", refreshErr: errors.New("expired refresh token")}
	var fetches atomic.Int64
	s := newOrderSession(tokens, func(ctx context.Context, token string) ([]orderdom.Order, error) {
		fetches.Add(1)
		return nil, nil
	})

	s.Start(10 * time.Millisecond)
	waitFor(t, func() bool { return tokens.refreshes.Load() >= 3 })
	s.Stop()

	// the loop kept polling but never reached the store
	assert.Equal(t, fetches.Load(), int64(0))
}

func TestFirstFetchDoesNotNotify(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	owner := actor.New("owner-1", "Sato", user.RoleOwner)

	var polls atomic.Int64
	fetch := func(ctx context.Context, token string) ([]orderdom.Order, error) {
		n := polls.Add(1)
		if n == 1 {
			return []orderdom.Order{mkOrder("o1", orderdom.StatusPending, "", t0)}, nil
		}
		return []orderdom.Order{
			mkOrder("o1", orderdom.StatusPending, "", t0),
			mkOrder("o2", orderdom.StatusPending, "", t0.Add(time.Second)),
		}, nil
	}
	s := NewSession("orders", owner, OrderReconciler(), tokens, fetch, OrderNotifications)

	s.Start(10 * time.Millisecond)
	defer s.Stop()

	// the baseline poll sees o1 but stays silent; only o2 notifies
	select {
	case n := <-s.Notifications():
		assert.Equal(t, n.SubjectID, "o2")
		assert.Equal(t, n.Kind, KindNewOrder)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification for the second poll's new order")
	}
	select {
	case n := <-s.Notifications():
		t.Fatalf("unexpected extra notification: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopDuringFetchDiscardsResult(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	fetch := func(ctx context.Context, token string) ([]orderdom.Order, error) {
		entered <- struct{}{}
		<-release
		return []orderdom.Order{mkOrder("o1", orderdom.StatusPending, "", t0)}, nil
	}
	s := newOrderSession(tokens, fetch)

	s.Start(10 * time.Millisecond)
	<-entered

	go func() {
		// Stop blocks until the loop drains, so release the fetch after
		// cancellation has been requested.
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	s.Stop()

	// the in-flight snapshot was never applied
	_, ok := s.Lookup("o1")
	assert.Equal(t, ok, false)
	assert.Equal(t, len(s.Snapshot()), 0)
}

func TestApplyRunsInlineWhenIdle(t *testing.T) {
	s := newOrderSession(&fakeTokens{token: "tok"}, nil)
	o := mkOrder("o1", orderdom.StatusPending, "", t0)
	s.Apply(func(p *Projection[orderdom.Order], pend *PendingSet) {
		p.Upsert(o.ID, o)
		pend.Mark(o.ID)
	})

	got, ok := s.Lookup("o1")
	assert.Equal(t, ok, true)
	assert.Equal(t, got.ID, "o1")
	assert.Equal(t, s.Pending().IsPending("o1"), true)
}

func TestApplyMarshaledOntoRunningLoop(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	s := newOrderSession(tokens, func(ctx context.Context, token string) ([]orderdom.Order, error) {
		return nil, nil
	})
	s.Start(10 * time.Millisecond)
	defer s.Stop()

	o := mkOrder("o1", orderdom.StatusPending, "", t0)
	s.Apply(func(p *Projection[orderdom.Order], pend *PendingSet) {
		p.Upsert(o.ID, o)
		pend.Mark(o.ID)
	})

	// pending protects the optimistic insert across empty snapshots
	waitFor(t, func() bool { return tokens.refreshes.Load() >= 2 })
	_, ok := s.Lookup("o1")
	assert.Equal(t, ok, true)
}

// MarkCaused runs on the intent-issuing side while the loop's mapper calls
// Caused; both must be safe to interleave while polls carry real deltas.
func TestMarkCausedDuringPolling(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	owner := actor.New("owner-1", "Sato", user.RoleOwner)

	var polls atomic.Int64
	fetch := func(ctx context.Context, token string) ([]orderdom.Order, error) {
		status := orderdom.StatusPending
		if polls.Add(1)%2 == 0 {
			status = orderdom.StatusAccepted
		}
		return []orderdom.Order{mkOrder("o1", status, "", t0)}, nil
	}
	s := NewSession("orders", owner, OrderReconciler(), tokens, fetch, OrderNotifications)
	s.Start(time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			owner.MarkCaused("o1", "accepted|")
		}
	}()
	<-done
	waitFor(t, func() bool { return polls.Load() >= 5 })
	s.Stop()
}

func TestManagerOneLoopPerKey(t *testing.T) {
	m := NewManager()
	tokens := &fakeTokens{token: "tok"}
	mk := func() *Session[orderdom.Order] {
		return newOrderSession(tokens, func(ctx context.Context, token string) ([]orderdom.Order, error) {
			return nil, nil
		})
	}

	key := Key("orders", "cust-1", "")
	first := mk()
	first.Start(10 * time.Millisecond)
	m.Register(key, first)

	second := mk()
	second.Start(10 * time.Millisecond)
	m.Register(key, second)

	// registering the same key stopped the previous session
	assert.Equal(t, first.State(), StateStopped)
	assert.Equal(t, second.IsRunning(), true)

	m.StopAll()
	assert.Equal(t, second.State(), StateStopped)
}
