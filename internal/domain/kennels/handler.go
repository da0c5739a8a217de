package kennels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kennel-console/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/kennels", func(kr chi.Router) {
		kr.Get("/", listKennelsHandler(svc))
		kr.Post("/", addKennelsHandler(svc))
		kr.Get("/available", listAvailableHandler(svc))
		kr.Post("/status", setStatusHandler(svc))
		kr.Get("/stream", streamKennelsHandler(svc))

		kr.Get("/groups/{group}", listGroupHandler(svc))
		kr.Put("/groups/{group}", assignGroupHandler(svc))
		kr.Patch("/groups/{group}", renameGroupHandler(svc))

		kr.Post("/{kennelID}/release", releaseKennelHandler(svc))
	})
}

type kennelResponse struct {
	ID        string    `json:"id"`
	Number    int       `json:"kennel_number"`
	Group     string    `json:"set_name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type groupResponse struct {
	Name    string           `json:"name"`
	Kennels []kennelResponse `json:"kennels"`
}

type addKennelsRequest struct {
	Count int `json:"count"`
}

type setStatusRequest struct {
	KennelIDs []string `json:"kennel_ids"`
	Status    Status   `json:"status" enums:"available,reserved,occupied,maintenance"`
}

type assignGroupRequest struct {
	KennelIDs []string `json:"kennel_ids"`
}

type renameGroupRequest struct {
	Name string `json:"name"`
}

// listKennelsHandler godoc
// @Summary Vista general de kennels
// @Description Sin filtro devuelve los kennels agrupados por set. Con `status` devuelve la lista plana de kennels en ese estado.
// @Tags kennels
// @Produce json
// @Param status query string false "available | reserved | occupied | maintenance"
// @Success 200 {array} groupResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 500 {string} string "internal error"
// @Router /kennels [get]
func listKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st := strings.TrimSpace(r.URL.Query().Get("status")); st != "" {
			items, err := svc.ListByStatus(r.Context(), Status(st))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toKennelResponses(items))
			return
		}

		groups, err := svc.Overview(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGroupResponses(groups))
	}
}

// listAvailableHandler godoc
// @Summary Kennels disponibles para reservar
// @Description Kennels en estado available fuera del set excluido (por defecto Maintenance).
// @Tags kennels
// @Produce json
// @Param exclude_group query string false "Set a excluir; default Maintenance"
// @Success 200 {array} groupResponse
// @Router /kennels/available [get]
func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exclude := MaintenanceGroup
		if q := r.URL.Query(); q.Has("exclude_group") {
			exclude = q.Get("exclude_group")
		}

		items, err := svc.ListAvailable(r.Context(), exclude)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGroupResponses(GroupBySet(items)))
	}
}

// addKennelsHandler godoc
// @Summary Agregar kennels
// @Description Crea `count` kennels nuevos en Maintenance, numerados a partir del máximo actual + 1.
// @Tags kennels
// @Accept json
// @Produce json
// @Param payload body addKennelsRequest true "Cantidad de kennels"
// @Success 201 {array} kennelResponse
// @Failure 400 {object} validationErrorResponse
// @Router /kennels [post]
func addKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addKennelsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		added, err := svc.AddKennels(r.Context(), req.Count)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toKennelResponses(added))
	}
}

func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.SetStatus(r.Context(), req.KennelIDs, req.Status); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listGroupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByGroup(r.Context(), chi.URLParam(r, "group"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toKennelResponses(items))
	}
}

// assignGroupHandler godoc
// @Summary Asignar kennels a un set
// @Tags kennels
// @Accept json
// @Param group path string true "Nombre del set"
// @Param payload body assignGroupRequest true "Kennels a mover"
// @Success 204
// @Failure 400 {object} validationErrorResponse
// @Failure 404 {string} string "kennel not found"
// @Router /kennels/groups/{group} [put]
func assignGroupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.AssignToGroup(r.Context(), req.KennelIDs, chi.URLParam(r, "group")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// renameGroupHandler godoc
// @Summary Renombrar un set
// @Description Re-etiqueta todos los kennels del set en una sola escritura.
// @Tags kennels
// @Accept json
// @Produce json
// @Param group path string true "Nombre actual del set"
// @Param payload body renameGroupRequest true "Nombre nuevo"
// @Success 200 {object} map[string]int
// @Failure 400 {object} validationErrorResponse
// @Failure 404 {string} string "kennel not found"
// @Router /kennels/groups/{group} [patch]
func renameGroupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		n, err := svc.RenameGroup(r.Context(), chi.URLParam(r, "group"), req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"renamed": n})
	}
}

func releaseKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ReleaseFromGroup(r.Context(), chi.URLParam(r, "kennelID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// streamKennelsHandler godoc
// @Summary Stream de kennels (SSE)
// @Description Envía el overview completo al conectar y otra vez después de cada cambio en la tabla de kennels.
// @Tags kennels
// @Produce text/event-stream
// @Success 200 {array} groupResponse
// @Failure 503 {string} string "change feed unavailable"
// @Router /kennels/stream [get]
func streamKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		updates, err := svc.Watch(r.Context())
		if err != nil {
			if errors.Is(err, ErrFeedUnavailable) {
				http.Error(w, "change feed unavailable", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// El stream vive más que el WriteTimeout del server.
		_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		initial, err := svc.Overview(r.Context())
		if err == nil {
			writeEvent(w, initial)
			flusher.Flush()
		}

		for groups := range updates {
			writeEvent(w, groups)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, groups []Group) {
	b, _ := json.Marshal(toGroupResponses(groups))
	_, _ = fmt.Fprintf(w, "event: kennels\ndata: %s\n\n", b)
}

func toKennelResponse(k Kennel) kennelResponse {
	return kennelResponse{
		ID:        k.ID,
		Number:    k.Number,
		Group:     k.Group,
		Status:    k.Status,
		CreatedAt: k.CreatedAt,
	}
}

func toKennelResponses(in []Kennel) []kennelResponse {
	out := make([]kennelResponse, 0, len(in))
	for _, k := range in {
		out = append(out, toKennelResponse(k))
	}
	return out
}

func toGroupResponses(in []Group) []groupResponse {
	out := make([]groupResponse, 0, len(in))
	for _, g := range in {
		out = append(out, groupResponse{Name: g.Name, Kennels: toKennelResponses(g.Kennels)})
	}
	return out
}

type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{Error: "invalid input", Fields: verr.Fields})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "kennel not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
