// internal/application/polling/pending_test.go
package polling

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestMarkConfirmLifecycle(t *testing.T) {
	p := NewPendingSet()
	assert.Equal(t, p.IsPending("m1"), false)

	p.Mark("m1")
	assert.Equal(t, p.IsPending("m1"), true)
	assert.Equal(t, p.Len(), 1)

	p.Confirm("m1")
	assert.Equal(t, p.IsPending("m1"), false)
	assert.Equal(t, p.Len(), 0)
}

func TestMarkIgnoresBlankID(t *testing.T) {
	p := NewPendingSet()
	p.Mark("")
	p.Mark("   ")
	assert.Equal(t, p.Len(), 0)
}

func TestInFlightMarkNeverExpires(t *testing.T) {
	p := NewPendingSet()
	p.Mark("m1")

	// no MarkSucceeded yet: the write may still be in flight
	expired := p.ExpireBefore(time.Now().Add(time.Hour))
	assert.Equal(t, len(expired), 0)
	assert.Equal(t, p.IsPending("m1"), true)
}

func TestGraceExpiry(t *testing.T) {
	p := NewPendingSet()
	p.Mark("m1")
	p.Mark("m2")
	p.MarkSucceeded("m1", 50*time.Millisecond)

	// before the deadline both survive
	expired := p.ExpireBefore(time.Now())
	assert.Equal(t, len(expired), 0)

	expired = p.ExpireBefore(time.Now().Add(time.Second))
	assert.Equal(t, expired, []string{"m1"})
	assert.Equal(t, p.IsPending("m1"), false)
	assert.Equal(t, p.IsPending("m2"), true)
}

func TestMarkSucceededRequiresExistingMark(t *testing.T) {
	p := NewPendingSet()
	p.MarkSucceeded("ghost", time.Millisecond)
	assert.Equal(t, p.Len(), 0)
}
