package breeds

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/breeds", searchBreedsHandler(svc))
}

// searchBreedsHandler godoc
// @Summary Autocompletar raza
// @Tags breeds
// @Produce json
// @Param q query string true "Prefijo"
// @Success 200 {array} string
// @Failure 502 {string} string "breed search unavailable"
// @Router /breeds [get]
func searchBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.Suggest(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				http.Error(w, ErrUnavailable.Error(), http.StatusBadGateway)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, names)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
