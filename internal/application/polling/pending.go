// internal/application/polling/pending.go
package polling

import (
	"strings"
	"sync"
	"time"
)

// DefaultGrace bounds how long a pending mark survives after the originating
// write is known to have succeeded but the id has not shown up in a snapshot.
const DefaultGrace = 5 * time.Second

// PendingSet tracks ids of records created or mutated locally but not yet
// confirmed by the store. The reconciler never evicts a pending entity just
// because one snapshot lacks it: absence may mean "not yet committed".
//
// Marks are cleared either when the id appears in a snapshot (Confirm), when
// a bounded grace period elapses after a known-successful write, or
// immediately when the write is known to have failed (Confirm + the caller
// removes the optimistic entity).
type PendingSet struct {
	mu sync.Mutex
	// deadline per id; zero time = write still in flight, no grace running.
	ids map[string]time.Time
}

func NewPendingSet() *PendingSet {
	return &PendingSet{ids: make(map[string]time.Time)}
}

// Mark adds the id at the moment of local insertion, before the network call
// resolves.
func (p *PendingSet) Mark(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids[id] = time.Time{}
}

// MarkSucceeded starts the bounded grace period once the originating write
// is known to have succeeded.
func (p *PendingSet) MarkSucceeded(id string, grace time.Duration) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.ids[id]; ok {
		p.ids[id] = time.Now().Add(grace)
	}
}

// Confirm clears the mark (snapshot confirmation or known write failure).
func (p *PendingSet) Confirm(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.ids, id)
}

func (p *PendingSet) IsPending(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[id]
	return ok
}

// IDs returns the currently pending ids in no particular order.
func (p *PendingSet) IDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.ids))
	for id := range p.ids {
		out = append(out, id)
	}
	return out
}

// ExpireBefore drops marks whose grace deadline has passed and returns the
// expired ids. Ids with no deadline (write still in flight) are kept.
func (p *PendingSet) ExpireBefore(now time.Time) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var expired []string
	for id, deadline := range p.ids {
		if !deadline.IsZero() && deadline.Before(now) {
			delete(p.ids, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (p *PendingSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids)
}
