// internal/application/polling/delta.go
package polling

// DeltaKind classifies a computed difference between two successive
// projections.
type DeltaKind string

const (
	DeltaCreated      DeltaKind = "created"
	DeltaStateChanged DeltaKind = "stateChanged"
	// DeltaRemoved: present before, absent now, and not pending. For
	// filtered queries this can be a false delete signal (the entity may
	// just have moved outside the filter); consumers treat it as removal
	// from the view, never as proof of deletion.
	DeltaRemoved DeltaKind = "removed"
)

// Delta carries the entity as last known (for removed, the previous copy).
type Delta[T any] struct {
	Kind   DeltaKind
	ID     string
	Entity T

	// PrevState/NewState hold the tracked-state tags for stateChanged.
	PrevState string
	NewState  string
}
