// internal/adapters/out/firestore/chat_codec_fs.go
package firestore

import (
	chatdom "homeplate/internal/domain/chat"
	"homeplate/internal/domain/store"
	"homeplate/internal/domain/user"
)

// DecodeMessage maps a raw document to a chat message with explicit
// defaults; unknown sender roles collapse to customer.
func DecodeMessage(doc store.Document) chatdom.Message {
	m := doc.Fields
	return chatdom.Message{
		ID:         doc.ID,
		OrderID:    mapGetStr(m, "orderId"),
		SenderID:   mapGetStr(m, "senderId"),
		SenderName: mapGetStr(m, "senderName"),
		SenderRole: user.ParseRole(mapGetStr(m, "senderRole")),
		Text:       mapGetStr(m, "text"),
		CreatedAt:  mapGetTime(m, "createdAt"),
	}
}

// EncodeMessage produces the full field map for a create. Messages are
// immutable after creation, so there is no patch encoder.
func EncodeMessage(msg chatdom.Message) map[string]any {
	return map[string]any{
		"orderId":    msg.OrderID,
		"senderId":   msg.SenderID,
		"senderName": msg.SenderName,
		"senderRole": string(msg.SenderRole),
		"text":       msg.Text,
		"createdAt":  msg.CreatedAt.UTC(),
	}
}
