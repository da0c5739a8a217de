package reservations

import (
	"context"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/feeding"
	"kennel-console/internal/domain/kennels"
)

type Repository interface {
	Create(ctx context.Context, r Reservation) error
	Update(ctx context.Context, r Reservation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Reservation, error)
	// List ordena por created_at desc.
	List(ctx context.Context) ([]Reservation, error)
	// FindByKennel devuelve la reserva activa que incluye el kennel.
	FindByKennel(ctx context.Context, kennelID string) (Reservation, error)
}

type PetInfoRepository interface {
	GetByReservation(ctx context.Context, reservationID string) (PetInfo, error)
	Upsert(ctx context.Context, p PetInfo) error
	DeleteByReservation(ctx context.Context, reservationID string) error
}

type HistoryRepository interface {
	Insert(ctx context.Context, h Historical) error
	List(ctx context.Context) ([]Historical, error)
}

type BillRepository interface {
	Insert(ctx context.Context, b Bill) error
	ListByCustomer(ctx context.Context, customerID string) ([]Bill, error)
}

type AnalyticsRepository interface {
	Insert(ctx context.Context, a AnalyticsRow) error
	List(ctx context.Context) ([]AnalyticsRow, error)
}

// Repos son todas las tablas que tocan los workflows de reserva.
type Repos struct {
	Kennels      kennels.Repository
	Customers    customers.Repository
	Reservations Repository
	PetInfo      PetInfoRepository
	History      HistoryRepository
	Bills        BillRepository
	Analytics    AnalyticsRepository
	Feeding      feeding.Repository
}

// Store da acceso a los repos y a una transacción que los abarca a todos.
// WithinTx hace commit si fn devuelve nil y rollback en cualquier otro caso.
type Store interface {
	Repos() Repos
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
