package reporting

// Count es una entrada de una tabla de frecuencias (orden: count desc, key asc).
type Count struct {
	Key   string
	Count int
}

// ServiceUsage cuenta cuántas estadías cerradas usaron cada servicio extra.
type ServiceUsage struct {
	Pickup int
	Groom  int
	Drop   int
}

// Summary es todo lo que muestra el dashboard.
type Summary struct {
	TotalCustomers    int
	TotalReservations int

	ReservationsPerCustomer []Count
	StatusBreakdown         []Count
	PopularBreeds           []Count

	// RevenueByMonth[0] = enero ... [11] = diciembre, sumando todos los años.
	RevenueByMonth [12]int64
	Services       ServiceUsage

	AverageStayDays float64
	TotalRevenue    int64
	AverageRevenue  float64

	TotalKennels    int
	OccupiedKennels int
	// Porcentaje (0..100) de kennels que no están available.
	OccupancyRate float64

	CanceledReservations int
	CancellationRate     float64
}
