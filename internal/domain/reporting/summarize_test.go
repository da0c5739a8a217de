package reporting

import (
	"testing"
	"time"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reservations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyInputYieldsZeros(t *testing.T) {
	s := Summarize(Input{})

	assert.Equal(t, 0, s.TotalCustomers)
	assert.Equal(t, 0, s.TotalReservations)
	assert.Zero(t, s.AverageStayDays)
	assert.Zero(t, s.AverageRevenue)
	assert.Zero(t, s.OccupancyRate)
	assert.Zero(t, s.CancellationRate)
	assert.Empty(t, s.PopularBreeds)
}

func TestSummarize_Metrics(t *testing.T) {
	jan := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)

	in := Input{
		Customers: []customers.Customer{
			{ID: "c1", Name: "Ana"},
			{ID: "c2", Name: "Luis"},
		},
		Analytics: []reservations.AnalyticsRow{
			{CustomerID: "c1", PetBreed: "Beagle", DaysStayed: 3, Total: 1200, CreatedAt: jan, Services: reservations.Services{Pickup: true}},
			{CustomerID: "c1", PetBreed: "Beagle", DaysStayed: 1, Total: 400, CreatedAt: mar, Services: reservations.Services{Groom: true, Drop: true}},
			{CustomerID: "c2", PetBreed: "Pug", DaysStayed: 2, Total: 800, CreatedAt: mar},
		},
		History: []reservations.Historical{
			{Status: reservations.HistoricalCheckout},
			{Status: reservations.HistoricalCheckout},
			{Status: reservations.HistoricalCheckout},
			{Status: reservations.HistoricalCanceled},
		},
		Kennels: []kennels.Kennel{
			{ID: "k1", Status: kennels.StatusAvailable},
			{ID: "k2", Status: kennels.StatusReserved},
			{ID: "k3", Status: kennels.StatusOccupied},
			{ID: "k4", Status: kennels.StatusAvailable},
		},
	}

	s := Summarize(in)

	assert.Equal(t, 2, s.TotalCustomers)
	assert.Equal(t, 4, s.TotalReservations)
	assert.Equal(t, []Count{{Key: "Ana", Count: 2}, {Key: "Luis", Count: 1}}, s.ReservationsPerCustomer)
	assert.Equal(t, []Count{{Key: "Beagle", Count: 2}, {Key: "Pug", Count: 1}}, s.PopularBreeds)
	assert.Equal(t, []Count{{Key: "checkout", Count: 3}, {Key: "canceled", Count: 1}}, s.StatusBreakdown)

	assert.Equal(t, int64(1200), s.RevenueByMonth[0])
	assert.Equal(t, int64(1200), s.RevenueByMonth[2])
	assert.Equal(t, ServiceUsage{Pickup: 1, Groom: 1, Drop: 1}, s.Services)

	assert.Equal(t, int64(2400), s.TotalRevenue)
	assert.InDelta(t, 2.0, s.AverageStayDays, 1e-9)
	assert.InDelta(t, 800.0, s.AverageRevenue, 1e-9)

	require.Equal(t, 2, s.OccupiedKennels)
	assert.InDelta(t, 50.0, s.OccupancyRate, 1e-9)
	assert.Equal(t, 1, s.CanceledReservations)
	assert.InDelta(t, 25.0, s.CancellationRate, 1e-9)
}

func TestSummarize_UnknownCustomerFallsBackToSnapshotName(t *testing.T) {
	s := Summarize(Input{
		Analytics: []reservations.AnalyticsRow{{CustomerID: "gone", CustomerName: "Marta", CreatedAt: time.Now()}},
	})
	assert.Equal(t, []Count{{Key: "Marta", Count: 1}}, s.ReservationsPerCustomer)
}
