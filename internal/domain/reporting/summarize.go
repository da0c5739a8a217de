package reporting

import (
	"sort"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reservations"
)

// Input son las cuatro colecciones que lee el dashboard.
type Input struct {
	Customers []customers.Customer
	Analytics []reservations.AnalyticsRow
	History   []reservations.Historical
	Kennels   []kennels.Kennel
}

// Summarize es puro: no toca el store. Toda división por cero da 0.
func Summarize(in Input) Summary {
	out := Summary{
		TotalCustomers:    len(in.Customers),
		TotalReservations: len(in.History),
		TotalKennels:      len(in.Kennels),
	}

	names := make(map[string]string, len(in.Customers))
	for _, c := range in.Customers {
		names[c.ID] = c.Name
	}

	perCustomer := map[string]int{}
	breeds := map[string]int{}
	var totalDays int

	for _, a := range in.Analytics {
		name := a.CustomerName
		if n, ok := names[a.CustomerID]; ok {
			name = n
		}
		perCustomer[name]++
		breeds[a.PetBreed]++

		totalDays += a.DaysStayed
		out.TotalRevenue += a.Total
		out.RevenueByMonth[a.CreatedAt.UTC().Month()-1] += a.Total

		if a.Services.Pickup {
			out.Services.Pickup++
		}
		if a.Services.Groom {
			out.Services.Groom++
		}
		if a.Services.Drop {
			out.Services.Drop++
		}
	}

	statuses := map[string]int{}
	for _, h := range in.History {
		statuses[string(h.Status)]++
		if h.Status == reservations.HistoricalCanceled {
			out.CanceledReservations++
		}
	}

	for _, k := range in.Kennels {
		if k.Status != kennels.StatusAvailable {
			out.OccupiedKennels++
		}
	}

	out.ReservationsPerCustomer = sortedCounts(perCustomer)
	out.PopularBreeds = sortedCounts(breeds)
	out.StatusBreakdown = sortedCounts(statuses)

	out.AverageStayDays = ratio(float64(totalDays), len(in.Analytics))
	out.AverageRevenue = ratio(float64(out.TotalRevenue), len(in.Analytics))
	out.OccupancyRate = ratio(float64(out.OccupiedKennels), out.TotalKennels) * 100
	out.CancellationRate = ratio(float64(out.CanceledReservations), out.TotalReservations) * 100
	return out
}

func ratio(num float64, den int) float64 {
	if den == 0 {
		return 0
	}
	return num / float64(den)
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
