package feeding

import "time"

// Session es una de las dos ventanas de comida del día.
// @Enum morning, noon
type Session string

const (
	SessionMorning Session = "morning"
	SessionNoon    Session = "noon"
)

func (s Session) Valid() bool {
	return s == SessionMorning || s == SessionNoon
}

// Record es una fila cruda de feeding_schedule. Es append-only: marcar
// dos veces la misma sesión genera dos filas.
type Record struct {
	ID       string
	KennelID string
	Date     time.Time // fecha calendario, medianoche UTC
	Session  Session
	Fed      bool
	Eaten    bool

	CreatedAt time.Time
}

// Log es la vista plegada por (kennel, fecha).
type Log struct {
	KennelID     string
	KennelNumber int
	Date         time.Time
	MorningFed   bool
	NoonFed      bool
}
