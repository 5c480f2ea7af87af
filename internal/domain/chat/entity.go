// internal/domain/chat/entity.go
package chat

import (
	"errors"
	"strings"
	"time"

	"homeplate/internal/domain/user"
)

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID      = errors.New("chat: invalid id")
	ErrInvalidOrderID = errors.New("chat: invalid orderId")
	ErrInvalidSender  = errors.New("chat: invalid sender")
	ErrInvalidText    = errors.New("chat: invalid text")
	ErrInvalidTime    = errors.New("chat: invalid createdAt")
)

// ========================================
// Entity (shared-store document)
// ========================================

// Message is one chat line scoped under an order. The id is generated on the
// sending device before the create call so the optimistic local copy and the
// later server-confirmed copy are the same record.
type Message struct {
	ID         string
	OrderID    string
	SenderID   string
	SenderName string
	SenderRole user.Role
	Text       string
	CreatedAt  time.Time
}

// New builds a message for optimistic local insertion.
func New(id, orderID, senderID, senderName string, role user.Role, text string, now time.Time) (Message, error) {
	m := Message{
		ID:         strings.TrimSpace(id),
		OrderID:    strings.TrimSpace(orderID),
		SenderID:   strings.TrimSpace(senderID),
		SenderName: strings.TrimSpace(senderName),
		SenderRole: role,
		Text:       strings.TrimSpace(text),
		CreatedAt:  now.UTC(),
	}
	if err := m.validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (m Message) validate() error {
	if m.ID == "" {
		return ErrInvalidID
	}
	if m.OrderID == "" {
		return ErrInvalidOrderID
	}
	if m.SenderID == "" {
		return ErrInvalidSender
	}
	if m.Text == "" {
		return ErrInvalidText
	}
	if m.CreatedAt.IsZero() {
		return ErrInvalidTime
	}
	return nil
}
