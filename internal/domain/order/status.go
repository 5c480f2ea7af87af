// internal/domain/order/status.go
package order

import "strings"

// ========================================
// Status (state machine)
// ========================================

type Status string

const (
	StatusPending        Status = "pending"
	StatusAccepted       Status = "accepted"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// chain holds the forward progression. cancelled sits outside the chain and
// is reachable from any non-terminal state.
var chain = []Status{
	StatusPending,
	StatusAccepted,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

func IsValidStatus(s Status) bool {
	if s == StatusCancelled {
		return true
	}
	for _, c := range chain {
		if s == c {
			return true
		}
	}
	return false
}

// ParseStatus maps a raw stored value to a Status. Unrecognized values
// collapse to StatusPending (safe baseline) instead of failing the decode.
func ParseStatus(raw string) Status {
	s := Status(strings.TrimSpace(strings.ToLower(raw)))
	if IsValidStatus(s) {
		return s
	}
	return StatusPending
}

func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the immediate successor in the forward chain, or "" when the
// status has none (terminal or cancelled).
func Next(s Status) Status {
	for i, c := range chain {
		if s == c && i+1 < len(chain) {
			return chain[i+1]
		}
	}
	return ""
}

// CanTransition reports whether a locally issued request may move an order
// from cur to target. Only the immediate successor is legal, plus cancelled
// from any non-terminal state. The backend stays authoritative: remotely
// observed transitions are never rejected, this guards local mutations only.
func CanTransition(cur, target Status) bool {
	if cur == target {
		return false
	}
	if target == StatusCancelled {
		return !IsTerminal(cur)
	}
	return Next(cur) == target
}
