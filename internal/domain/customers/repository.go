package customers

import "context"

type Repository interface {
	Create(ctx context.Context, c Customer) error
	Update(ctx context.Context, c Customer) error
	GetByID(ctx context.Context, id string) (Customer, error)
	// GetByPhone devuelve el primero registrado con ese teléfono.
	GetByPhone(ctx context.Context, phone string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
