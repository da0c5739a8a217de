package kennels

import "context"

type Repository interface {
	// List devuelve kennels ordenados por group y number.
	List(ctx context.Context, filter ListFilter) ([]Kennel, error)
	GetByIDs(ctx context.Context, ids []string) ([]Kennel, error)

	// AddSequential inserta count kennels con números max+1..max+count.
	// Lectura del máximo + insert deben ser atómicos.
	AddSequential(ctx context.Context, count int, group string, status Status) ([]Kennel, error)

	SetStatus(ctx context.Context, ids []string, status Status) error
	SetGroup(ctx context.Context, ids []string, group string) error

	// RenameGroup re-etiqueta todos los kennels de from en una sola escritura.
	RenameGroup(ctx context.Context, from, to string) (int, error)
}

type ListFilter struct {
	Status       Status
	Group        string
	ExcludeGroup string
}

// ChangeFeed entrega una notificación por cada insert/update/delete en kennels.
// El canal se cierra cuando ctx termina.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan Change, error)
}
