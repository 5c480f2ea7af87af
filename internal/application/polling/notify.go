// internal/application/polling/notify.go
package polling

import (
	"fmt"

	"homeplate/internal/domain/actor"
	"homeplate/internal/domain/chat"
	"homeplate/internal/domain/order"
	"homeplate/internal/domain/user"
)

// ========================================
// Notification intents
// ========================================

type NotificationKind string

const (
	KindChatMessage NotificationKind = "chat_message"
	KindOrderStatus NotificationKind = "order_status"
	KindNewOrder    NotificationKind = "new_order"
)

// Notification is an intent consumed by an external presentation layer
// (local banner, badge, FCM fan-out). The engine only decides that it is
// warranted and what it says.
type Notification struct {
	Title     string
	Body      string
	SubjectID string
	Kind      NotificationKind
}

// Mapper turns a poll cycle's deltas into notification intents for the
// viewing actor. The session suppresses all intents before the first
// successful fetch (no baseline to compare against).
type Mapper[T any] func(deltas []Delta[T], viewer *actor.Context) []Notification

// ========================================
// Order deltas
// ========================================

var statusLines = map[order.Status]string{
	order.StatusAccepted:       "Your order was accepted",
	order.StatusPreparing:      "The kitchen started preparing your order",
	order.StatusReady:          "Order is ready for pickup",
	order.StatusOutForDelivery: "Your order is out for delivery",
	order.StatusDelivered:      "Order delivered. Enjoy!",
	order.StatusCancelled:      "Order was cancelled",
}

// OrderNotifications implements the role rules for the orders collection:
//   - created: only the restaurant side cares (owner/admin); customers and
//     couriers see new orders through their own flows
//   - stateChanged: everyone except the actor who caused the change in this
//     session; couriers get a pickup wording for ready
//   - removed: never notified (possible false delete signal from a filtered
//     query)
func OrderNotifications(deltas []Delta[order.Order], viewer *actor.Context) []Notification {
	var out []Notification
	for _, d := range deltas {
		switch d.Kind {
		case DeltaCreated:
			if viewer.Role != user.RoleOwner && viewer.Role != user.RoleAdmin {
				continue
			}
			out = append(out, Notification{
				Title:     "New order",
				Body:      fmt.Sprintf("Order %s: %d item(s)", shortID(d.ID), len(d.Entity.Items)),
				SubjectID: d.ID,
				Kind:      KindNewOrder,
			})
		case DeltaStateChanged:
			if viewer.Caused(d.ID, d.NewState) {
				continue
			}
			body, ok := statusLines[d.Entity.Status]
			if !ok {
				continue
			}
			if viewer.Role == user.RoleCourier && d.Entity.Status == order.StatusReady {
				body = "A delivery is ready for pickup"
			}
			out = append(out, Notification{
				Title:     fmt.Sprintf("Order %s", shortID(d.ID)),
				Body:      body,
				SubjectID: d.ID,
				Kind:      KindOrderStatus,
			})
		}
	}
	return out
}

// ========================================
// Chat deltas
// ========================================

// ChatNotifications notifies on created messages from other senders only;
// the viewer's own (possibly still pending) sends never self-notify.
// Messages are immutable, so no other delta kind applies.
func ChatNotifications(deltas []Delta[chat.Message], viewer *actor.Context) []Notification {
	var out []Notification
	for _, d := range deltas {
		if d.Kind != DeltaCreated {
			continue
		}
		if d.Entity.SenderID == viewer.ID {
			continue
		}
		out = append(out, Notification{
			Title:     d.Entity.SenderName,
			Body:      d.Entity.Text,
			SubjectID: d.Entity.OrderID,
			Kind:      KindChatMessage,
		})
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
