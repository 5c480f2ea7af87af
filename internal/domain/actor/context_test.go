// internal/domain/actor/context_test.go
package actor

import (
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"

	"homeplate/internal/domain/user"
)

func TestCausedConsumesOnlyMatchingState(t *testing.T) {
	c := New("owner-1", "Sato", user.RoleOwner)
	c.MarkCaused("order-1", "accepted|")

	// a replayed pre-mutation state must not spend the mark
	assert.Equal(t, c.Caused("order-1", "pending|"), false)
	assert.Equal(t, c.Caused("order-1", "accepted|"), true)

	// consumed: later remote changes notify again
	assert.Equal(t, c.Caused("order-1", "accepted|"), false)
}

func TestCausedUnknownEntity(t *testing.T) {
	c := New("owner-1", "Sato", user.RoleOwner)
	assert.Equal(t, c.Caused("ghost", "accepted|"), false)
}

func TestMarkCausedIgnoresBlankID(t *testing.T) {
	c := New("owner-1", "Sato", user.RoleOwner)
	c.MarkCaused("   ", "accepted|")
	assert.Equal(t, c.Caused("", "accepted|"), false)
}

func TestMarkCausedReplacesTag(t *testing.T) {
	c := New("owner-1", "Sato", user.RoleOwner)
	c.MarkCaused("order-1", "accepted|")
	c.MarkCaused("order-1", "preparing|")

	assert.Equal(t, c.Caused("order-1", "accepted|"), false)
	assert.Equal(t, c.Caused("order-1", "preparing|"), true)
}

// Marks are written from the intent-issuing side while the polling loop
// consumes them; run both sides hard so the race detector can object.
func TestConcurrentMarkAndConsume(t *testing.T) {
	c := New("owner-1", "Sato", user.RoleOwner)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.MarkCaused("order-1", "accepted|")
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Caused("order-1", "accepted|")
			}
		}()
	}
	wg.Wait()
}
