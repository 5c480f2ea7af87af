// internal/domain/order/repository_port.go
package order

import "context"

// Repository は Order ドメインの永続化ポート（契約）です。
// 実装はデータストア技術に依存して構いませんが、上位層からは本インターフェースのみを参照します。
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)

	// 一覧取得（等値フィルタのみ、backend が唯一の権威）
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error)
	ListByCourier(ctx context.Context, courierID string) ([]Order, error)
	ListByStatus(ctx context.Context, status Status) ([]Order, error)

	// 作成・部分更新
	Create(ctx context.Context, o Order) error
	Patch(ctx context.Context, id string, p Patch) error
}
