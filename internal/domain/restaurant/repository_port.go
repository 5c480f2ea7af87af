// internal/domain/restaurant/repository_port.go
package restaurant

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Restaurant, error)
}
