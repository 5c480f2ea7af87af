// internal/application/polling/projection.go
package polling

import (
	"sort"
	"strings"
	"time"
)

// Projection is one session's local, typed snapshot of shared remote
// entities. Each session owns its projection exclusively; nothing here is
// safe for concurrent use (the session marshals all access onto its loop).
type Projection[T any] struct {
	byID map[string]entry[T]
	// seq assigns insertion order so ordered views can break createdAt ties
	// by arrival instead of by id, keeping optimistic sends visually stable
	// at the end of the list.
	nextSeq int
	// baselined flips after the first successful fetch has been applied;
	// notification mapping stays silent until then.
	baselined bool
}

type entry[T any] struct {
	val T
	seq int
}

func NewProjection[T any]() *Projection[T] {
	return &Projection[T]{byID: make(map[string]entry[T])}
}

func (p *Projection[T]) Get(id string) (T, bool) {
	e, ok := p.byID[strings.TrimSpace(id)]
	return e.val, ok
}

// Upsert inserts or replaces an entity, preserving the original insertion
// sequence on replacement.
func (p *Projection[T]) Upsert(id string, v T) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if prev, ok := p.byID[id]; ok {
		p.byID[id] = entry[T]{val: v, seq: prev.seq}
		return
	}
	p.byID[id] = entry[T]{val: v, seq: p.nextSeq}
	p.nextSeq++
}

func (p *Projection[T]) Remove(id string) {
	delete(p.byID, strings.TrimSpace(id))
}

func (p *Projection[T]) Len() int {
	return len(p.byID)
}

func (p *Projection[T]) Baselined() bool {
	return p.baselined
}

// Sorted returns the entities ordered by createdAt ascending, ties broken by
// insertion order.
func (p *Projection[T]) Sorted(createdAt func(T) time.Time) []T {
	entries := make([]entry[T], 0, len(p.byID))
	for _, e := range p.byID {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := createdAt(entries[i].val), createdAt(entries[j].val)
		if ti.Equal(tj) {
			return entries[i].seq < entries[j].seq
		}
		return ti.Before(tj)
	})
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.val)
	}
	return out
}
