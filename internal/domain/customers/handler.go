package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kennel-console/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// Las rutas van directo sobre r (sin subrouter) porque reservations
// registra /customers/history sobre el mismo prefijo.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/customers", listCustomersHandler(svc))
	r.Get("/customers/lookup", lookupCustomerHandler(svc))
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"customer_name"`
	Phone     string    `json:"customer_phone"`
	Address   string    `json:"customer_address"`
	CreatedAt time.Time `json:"created_at"`
}

func listCustomersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]customerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCustomerResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// lookupCustomerHandler godoc
// @Summary Buscar cliente por teléfono
// @Description Autocompleta nombre y dirección en el formulario de reserva. 404 significa cliente nuevo.
// @Tags customers
// @Produce json
// @Param phone query string true "Teléfono"
// @Success 200 {object} customerResponse
// @Failure 400 {string} string "phone is required"
// @Failure 404 {string} string "customer not found"
// @Router /customers/lookup [get]
func lookupCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Lookup(r.Context(), r.URL.Query().Get("phone"))
		if err != nil {
			var verr *validate.Error
			switch {
			case errors.As(err, &verr):
				http.Error(w, "phone is required", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "customer not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func toCustomerResponse(c Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
