// internal/domain/courier/repository_port.go
package courier

import "context"

// Repository は CourierApplication の永続化ポートです。
type Repository interface {
	GetByID(ctx context.Context, id string) (Application, error)
	ListByCourier(ctx context.Context, courierID string) ([]Application, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Application, error)

	Create(ctx context.Context, a Application) error
	// PatchStatus updates only the status field (owner decision).
	PatchStatus(ctx context.Context, id string, status ApplicationStatus) error
}
