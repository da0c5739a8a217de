package kennels

import "time"

// Status del kennel.
// @Enum available, reserved, occupied, maintenance
type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// MaintenanceGroup es el set por defecto: kennels nuevos o liberados de su set.
const MaintenanceGroup = "Maintenance"

// Kennel es una jaula física. Number es único y secuencial en toda la instalación.
type Kennel struct {
	ID     string
	Number int
	Group  string
	Status Status

	CreatedAt time.Time
}

// Group agrupa kennels por etiqueta de set (solo para mostrar).
type Group struct {
	Name    string
	Kennels []Kennel
}

// ChangeOp identifica qué tipo de escritura disparó la notificación.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
)

// Change es una notificación del feed; no trae el estado nuevo, el consumidor relee todo.
type Change struct {
	Op ChangeOp
	At time.Time
}
