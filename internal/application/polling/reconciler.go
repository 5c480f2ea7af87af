// internal/application/polling/reconciler.go
package polling

import (
	"time"
)

// Reconciler merges a freshly decoded server snapshot with the previous
// projection plus the pending-write set, producing the new canonical local
// projection and an ordered list of deltas.
//
// It is parameterized by three pure accessors so one implementation serves
// every entity collection:
//   - key: the entity id
//   - state: the tracked comparison tag (order status+courier, read flag,
//     ...); "" for immutable entities, which then never yield stateChanged
//   - createdAt: creation time, for ordered views
type Reconciler[T any] struct {
	key       func(T) string
	state     func(T) string
	createdAt func(T) time.Time
}

func NewReconciler[T any](
	key func(T) string,
	state func(T) string,
	createdAt func(T) time.Time,
) *Reconciler[T] {
	return &Reconciler[T]{key: key, state: state, createdAt: createdAt}
}

func (r *Reconciler[T]) CreatedAt(v T) time.Time { return r.createdAt(v) }
func (r *Reconciler[T]) Key(v T) string          { return r.key(v) }

// Reconcile applies the five-step merge:
//  1. new projection := server snapshot keyed by id
//  2. pending ids absent from the snapshot keep their last local copy
//     (optimistic survival)
//  3. pending ids present in the snapshot are confirmed
//  4. deltas := set/field comparison against the previous projection
//  5. ordering is the projection's concern (createdAt asc, insertion-order
//     ties); nothing here reorders
//
// prev is not mutated; the caller swaps in the returned projection.
func (r *Reconciler[T]) Reconcile(prev *Projection[T], snapshot []T, pending *PendingSet) (*Projection[T], []Delta[T]) {
	next := NewProjection[T]()
	// carry over insertion sequence so ties stay stable across polls
	next.nextSeq = prev.nextSeq

	seen := make(map[string]struct{}, len(snapshot))
	for _, v := range snapshot {
		id := r.key(v)
		if id == "" {
			continue
		}
		seen[id] = struct{}{}
		if old, ok := prev.byID[id]; ok {
			next.byID[id] = entry[T]{val: v, seq: old.seq}
		} else {
			next.byID[id] = entry[T]{val: v, seq: next.nextSeq}
			next.nextSeq++
		}
	}

	// optimistic survival + confirmation
	if pending != nil {
		for _, id := range pending.IDs() {
			if _, ok := seen[id]; ok {
				pending.Confirm(id)
				continue
			}
			if old, ok := prev.byID[id]; ok {
				next.byID[id] = old
			}
		}
	}

	var deltas []Delta[T]
	for _, v := range snapshot {
		id := r.key(v)
		if id == "" {
			continue
		}
		old, existed := prev.byID[id]
		if !existed {
			deltas = append(deltas, Delta[T]{Kind: DeltaCreated, ID: id, Entity: v})
			continue
		}
		if r.state != nil {
			prevTag, newTag := r.state(old.val), r.state(v)
			if prevTag != newTag {
				deltas = append(deltas, Delta[T]{
					Kind:      DeltaStateChanged,
					ID:        id,
					Entity:    v,
					PrevState: prevTag,
					NewState:  newTag,
				})
			}
		}
	}
	for id, old := range prev.byID {
		if _, ok := next.byID[id]; ok {
			continue
		}
		if pending != nil && pending.IsPending(id) {
			continue
		}
		deltas = append(deltas, Delta[T]{Kind: DeltaRemoved, ID: id, Entity: old.val})
	}

	next.baselined = true
	return next, deltas
}
