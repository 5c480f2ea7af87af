// internal/domain/chat/repository_port.go
package chat

import "context"

// Repository は ChatMessage の永続化ポートです。メッセージは作成のみで、
// クライアントからの変更・削除はありません。
type Repository interface {
	ListByOrder(ctx context.Context, orderID string) ([]Message, error)
	Create(ctx context.Context, m Message) error
}
