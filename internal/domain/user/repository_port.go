// internal/domain/user/repository_port.go
package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
}
