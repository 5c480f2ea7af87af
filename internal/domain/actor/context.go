// internal/domain/actor/context.go
package actor

import (
	"strings"
	"sync"

	"homeplate/internal/domain/user"
)

// Context identifies the viewing actor for one polling session. It is passed
// explicitly into the reconciler/mapper instead of being read from ambient
// global state, which keeps the core role-agnostic.
type Context struct {
	ID   string
	Name string
	Role user.Role

	// causedBy maps entity id to the state tag this actor's latest local
	// mutation produced (e.g. "accepted|" after the owner tapped accept).
	// Written from the intent-issuing side and read from the polling loop,
	// so access is guarded.
	mu       sync.Mutex
	causedBy map[string]string
}

func New(id, name string, role user.Role) *Context {
	return &Context{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Role:     role,
		causedBy: make(map[string]string),
	}
}

// MarkCaused records that this actor originated the change that moved the
// entity to stateTag in the current session.
func (c *Context) MarkCaused(entityID, stateTag string) {
	if c == nil || strings.TrimSpace(entityID) == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.causedBy == nil {
		c.causedBy = make(map[string]string)
	}
	c.causedBy[entityID] = stateTag
}

// Caused reports whether this actor originated the change that produced
// newState for the entity. The mark is consumed only on a match: a stale
// snapshot can replay the pre-mutation state first, and that spurious delta
// must not spend the mark meant for the real one.
func (c *Context) Caused(entityID, newState string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tag, ok := c.causedBy[entityID]
	if !ok || tag != newState {
		return false
	}
	delete(c.causedBy, entityID)
	return true
}
