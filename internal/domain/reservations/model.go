package reservations

import "time"

// Status de una reserva activa. checkout es transitorio: la fila se archiva
// y se borra en la misma transacción.
// @Enum pending, confirmed, checkout
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckout  Status = "checkout"
)

// HistoricalStatus es el estado terminal de una reserva archivada.
// @Enum canceled, checkout
type HistoricalStatus string

const (
	HistoricalCanceled HistoricalStatus = "canceled"
	HistoricalCheckout HistoricalStatus = "checkout"
)

// Services son los servicios extra contratados.
type Services struct {
	Pickup bool
	Groom  bool
	Drop   bool
}

type Reservation struct {
	ID         string
	CustomerID string

	PetName  string
	PetBreed string

	// Fechas calendario (medianoche UTC), ambas inclusivas.
	StartDate time.Time
	EndDate   time.Time

	Status    Status
	KennelIDs []string
	Services  Services

	CreatedAt time.Time
}

// PetInfo es el registro 1:1 (por reserva) con cuidados especiales.
type PetInfo struct {
	ID            string
	ReservationID string
	KennelID      string

	DietaryRequirements     string
	SpecialCareInstructions string
	MedicalNotes            string
}

// Historical es el archivo append-only de reservas canceladas o cerradas.
type Historical struct {
	ID            string
	ReservationID string
	CustomerID    string

	PetName   string
	PetBreed  string
	StartDate time.Time
	EndDate   time.Time

	Status    HistoricalStatus
	KennelIDs []string
	Services  Services

	CreatedAt  time.Time // de la reserva original
	ArchivedAt time.Time
}

// Bill se crea una sola vez, en el checkout.
type Bill struct {
	ID            string
	ReservationID string
	CustomerID    string
	CustomerName  string

	PetName  string
	PetBreed string
	CheckIn  time.Time
	CheckOut time.Time

	DaysStayed int
	PerDayRate int64
	Total      int64

	CreatedAt time.Time
}

// AnalyticsRow es el snapshot desnormalizado que alimenta el dashboard. Nunca se actualiza.
type AnalyticsRow struct {
	ID string

	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	PetName   string
	PetBreed  string
	StartDate time.Time
	EndDate   time.Time

	DaysStayed int
	PerDayRate int64
	Total      int64

	Services  Services
	KennelIDs []string

	CreatedAt time.Time
}
