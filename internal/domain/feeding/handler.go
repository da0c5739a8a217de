package feeding

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/feeding", func(fr chi.Router) {
		fr.Post("/", markFedHandler(svc))
		fr.Get("/kennels", occupiedKennelsHandler(svc))
		fr.Get("/fed", fedKennelsHandler(svc))
		fr.Get("/logs", logsHandler(svc))
		fr.Get("/logs.pdf", logsPDFHandler(svc))

		// Historial de un kennel (diálogo de detalle del kennel)
		fr.Get("/kennels/{kennelID}/logs.pdf", kennelLogsPDFHandler(svc))
	})
}

type markFedRequest struct {
	KennelIDs   []string `json:"kennel_ids"`
	FeedingDate string   `json:"feeding_date"` // YYYY-MM-DD
	FeedingTime Session  `json:"feeding_time" enums:"morning,noon"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	KennelID    string    `json:"kennel_id"`
	FeedingDate string    `json:"feeding_date"`
	FeedingTime Session   `json:"feeding_time"`
	Fed         bool      `json:"fed"`
	Eaten       bool      `json:"eaten"`
	CreatedAt   time.Time `json:"created_at"`
}

type logResponse struct {
	KennelID     string `json:"kennel_id"`
	KennelNumber int    `json:"kennel_number"`
	FeedingDate  string `json:"feeding_date"`
	MorningFed   bool   `json:"morning_fed"`
	NoonFed      bool   `json:"noon_fed"`
}

type kennelSetResponse struct {
	Name    string               `json:"name"`
	Kennels []feedKennelResponse `json:"kennels"`
}

type feedKennelResponse struct {
	ID     string         `json:"id"`
	Number int            `json:"kennel_number"`
	Status kennels.Status `json:"status"`
}

// markFedHandler godoc
// @Summary Marcar kennels como alimentados
// @Description Inserta una fila por kennel para la fecha y sesión. Es append-only: repetir la marca agrega filas.
// @Tags feeding
// @Accept json
// @Produce json
// @Param payload body markFedRequest true "Kennels, fecha (YYYY-MM-DD) y sesión"
// @Success 201 {array} recordResponse
// @Failure 400 {object} validationErrorResponse
// @Router /feeding [post]
func markFedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markFedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date time.Time
		if strings.TrimSpace(req.FeedingDate) != "" {
			d, err := time.Parse(dateLayout, req.FeedingDate)
			if err != nil {
				http.Error(w, "feeding_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = d
		}

		rows, err := svc.MarkFed(r.Context(), MarkInput{
			KennelIDs: req.KennelIDs,
			Date:      date,
			Session:   req.FeedingTime,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]recordResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, recordResponse{
				ID:          row.ID,
				KennelID:    row.KennelID,
				FeedingDate: row.Date.Format(dateLayout),
				FeedingTime: row.Session,
				Fed:         row.Fed,
				Eaten:       row.Eaten,
				CreatedAt:   row.CreatedAt,
			})
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

func occupiedKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.ListOccupiedKennelsGroupedBySet(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]kennelSetResponse, 0, len(groups))
		for _, g := range groups {
			set := kennelSetResponse{Name: g.Name, Kennels: make([]feedKennelResponse, 0, len(g.Kennels))}
			for _, k := range g.Kennels {
				set.Kennels = append(set.Kennels, feedKennelResponse{ID: k.ID, Number: k.Number, Status: k.Status})
			}
			out = append(out, set)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// fedKennelsHandler godoc
// @Summary Kennels ya alimentados
// @Tags feeding
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Param session query string true "morning | noon"
// @Success 200 {array} string
// @Failure 400 {object} validationErrorResponse
// @Router /feeding/fed [get]
func fedKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		date, err := time.Parse(dateLayout, q.Get("date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ids, err := svc.ListFedKennels(r.Context(), date, Session(q.Get("session")))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ids)
	}
}

// logsHandler godoc
// @Summary Historial de alimentación
// @Description Una fila por kennel y fecha con las marcas de mañana y mediodía.
// @Tags feeding
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param kennel_number query int false "Número de kennel"
// @Success 200 {array} logResponse
// @Router /feeding/logs [get]
func logsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseLogFilter(w, r)
		if !ok {
			return
		}

		logs, err := svc.Logs(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]logResponse, 0, len(logs))
		for _, l := range logs {
			out = append(out, logResponse{
				KennelID:     l.KennelID,
				KennelNumber: l.KennelNumber,
				FeedingDate:  l.Date.Format(dateLayout),
				MorningFed:   l.MorningFed,
				NoonFed:      l.NoonFed,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// logsPDFHandler godoc
// @Summary Historial de alimentación en PDF
// @Tags feeding
// @Produce application/pdf
// @Param date query string false "YYYY-MM-DD"
// @Param kennel_number query int false "Número de kennel"
// @Success 200 {file} file
// @Router /feeding/logs.pdf [get]
func logsPDFHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseLogFilter(w, r)
		if !ok {
			return
		}

		logs, err := svc.Logs(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writePDF(w, "feeding_log_history.pdf", "Feeding Log History", logs)
	}
}

func kennelLogsPDFHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := svc.Logs(r.Context(), LogFilter{KennelID: chi.URLParam(r, "kennelID")})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writePDF(w, "feeding_information.pdf", "Feeding Information", logs)
	}
}

func parseLogFilter(w http.ResponseWriter, r *http.Request) (LogFilter, bool) {
	q := r.URL.Query()
	var filter LogFilter

	if v := strings.TrimSpace(q.Get("date")); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return LogFilter{}, false
		}
		filter.Date = &d
	}
	if v := strings.TrimSpace(q.Get("kennel_number")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "kennel_number must be a positive integer", http.StatusBadRequest)
			return LogFilter{}, false
		}
		filter.KennelNumber = n
	}
	return filter, true
}

// Render a buffer primero: si fpdf falla todavía se puede responder 500.
func writePDF(w http.ResponseWriter, filename, title string, logs []Log) {
	var buf bytes.Buffer
	if err := ExportPDF(&buf, title, logs); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
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
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
