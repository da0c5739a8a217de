package reporting

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
}

type countResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type servicesResponse struct {
	Pickup int `json:"pickup"`
	Groom  int `json:"groom"`
	Drop   int `json:"drop"`
}

type dashboardResponse struct {
	TotalCustomers          int              `json:"total_customers"`
	TotalReservations       int              `json:"total_reservations"`
	ReservationsPerCustomer []countResponse  `json:"reservations_per_customer"`
	StatusBreakdown         []countResponse  `json:"status_breakdown"`
	PopularBreeds           []countResponse  `json:"popular_breeds"`
	RevenueByMonth          [12]int64        `json:"revenue_by_month"`
	Services                servicesResponse `json:"services_utilization"`
	AverageStayDays         float64          `json:"average_stay_days"`
	TotalRevenue            int64            `json:"total_revenue"`
	AverageRevenue          float64          `json:"average_revenue_per_reservation"`
	TotalKennels            int              `json:"total_kennels"`
	OccupiedKennels         int              `json:"occupied_kennels"`
	OccupancyRate           float64          `json:"occupancy_rate"`
	CanceledReservations    int              `json:"canceled_reservations"`
	CancellationRate        float64          `json:"cancellation_rate"`
}

// dashboardHandler godoc
// @Summary Dashboard
// @Description Métricas de clientes, reservas, mascotas y ocupación de kennels.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 500 {string} string "internal error"
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Dashboard(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, dashboardResponse{
			TotalCustomers:          s.TotalCustomers,
			TotalReservations:       s.TotalReservations,
			ReservationsPerCustomer: toCountResponses(s.ReservationsPerCustomer),
			StatusBreakdown:         toCountResponses(s.StatusBreakdown),
			PopularBreeds:           toCountResponses(s.PopularBreeds),
			RevenueByMonth:          s.RevenueByMonth,
			Services:                servicesResponse(s.Services),
			AverageStayDays:         s.AverageStayDays,
			TotalRevenue:            s.TotalRevenue,
			AverageRevenue:          s.AverageRevenue,
			TotalKennels:            s.TotalKennels,
			OccupiedKennels:         s.OccupiedKennels,
			OccupancyRate:           s.OccupancyRate,
			CanceledReservations:    s.CanceledReservations,
			CancellationRate:        s.CancellationRate,
		})
	}
}

func toCountResponses(in []Count) []countResponse {
	out := make([]countResponse, 0, len(in))
	for _, c := range in {
		out = append(out, countResponse(c))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
