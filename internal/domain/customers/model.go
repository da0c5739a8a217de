package customers

import "time"

// Customer es el dueño de la mascota. Phone funciona como clave natural para la búsqueda.
type Customer struct {
	ID      string
	Name    string
	Phone   string
	Address string

	CreatedAt time.Time
}
