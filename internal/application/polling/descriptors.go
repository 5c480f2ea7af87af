// internal/application/polling/descriptors.go
package polling

import (
	"time"

	"homeplate/internal/domain/chat"
	"homeplate/internal/domain/courier"
	"homeplate/internal/domain/order"
)

// Per-collection reconcilers. The tracked-state tag decides what counts as a
// stateChanged delta for that collection.

// OrderReconciler tracks status and courier assignment as one tag so a
// courier grab shows up even when the status tag alone would not change.
func OrderReconciler() *Reconciler[order.Order] {
	return NewReconciler(
		func(o order.Order) string { return o.ID },
		func(o order.Order) string { return o.StateTag() },
		func(o order.Order) time.Time { return o.CreatedAt },
	)
}

// ChatReconciler: messages are immutable, no tracked state.
func ChatReconciler() *Reconciler[chat.Message] {
	return NewReconciler(
		func(m chat.Message) string { return m.ID },
		nil,
		func(m chat.Message) time.Time { return m.CreatedAt },
	)
}

// ApplicationReconciler tracks the approval status.
func ApplicationReconciler() *Reconciler[courier.Application] {
	return NewReconciler(
		func(a courier.Application) string { return a.ID },
		func(a courier.Application) string { return string(a.Status) },
		func(a courier.Application) time.Time { return a.CreatedAt },
	)
}
