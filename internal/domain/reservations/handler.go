package reservations

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reservations", func(rr chi.Router) {
		rr.Post("/", createReservationHandler(svc))
		rr.Get("/", listReservationsHandler(svc))
		rr.Get("/by-kennel/{kennelID}", occupantHandler(svc))

		rr.Get("/{reservationID}", getReservationHandler(svc))
		rr.Patch("/{reservationID}", updateReservationHandler(svc))
		rr.Get("/{reservationID}/pet-info", petInfoHandler(svc))
		rr.Post("/{reservationID}/confirm", confirmReservationHandler(svc))
		rr.Post("/{reservationID}/cancel", cancelReservationHandler(svc))
		rr.Get("/{reservationID}/bill", quoteBillHandler(svc))
		rr.Post("/{reservationID}/checkout", checkoutHandler(svc))
	})

	// Vista de clientes (el paquete customers registra el resto de /customers).
	r.Get("/customers/history", historyHandler(svc))
	r.Get("/customers/{customerID}/bills", customerBillsHandler(svc))
}

type servicesDTO struct {
	Pickup bool `json:"pickup"`
	Groom  bool `json:"groom"`
	Drop   bool `json:"drop"`
}

type createReservationRequest struct {
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	PetName         string      `json:"pet_name"`
	PetBreed        string      `json:"pet_breed"`
	StartDate       string      `json:"start_date"` // YYYY-MM-DD
	EndDate         string      `json:"end_date"`   // YYYY-MM-DD
	KennelIDs       []string    `json:"kennel_ids"`
	Services        servicesDTO `json:"services"`
}

type petInfoDTO struct {
	DietaryRequirements     string `json:"dietary_requirements"`
	SpecialCareInstructions string `json:"special_care_instructions"`
	MedicalNotes            string `json:"medical_notes"`
}

type updateReservationRequest struct {
	CustomerName    *string     `json:"customer_name"`
	CustomerPhone   *string     `json:"customer_phone"`
	CustomerAddress *string     `json:"customer_address"`
	PetName         *string     `json:"pet_name"`
	PetBreed        *string     `json:"pet_breed"`
	StartDate       *string     `json:"start_date"`
	EndDate         *string     `json:"end_date"`
	Pickup          *bool       `json:"pickup"`
	Groom           *bool       `json:"groom"`
	Drop            *bool       `json:"drop"`
	PetInfo         *petInfoDTO `json:"pet_info"`
}

type checkoutRequest struct {
	PerDayRate int64  `json:"per_day_rate"`
	Total      *int64 `json:"total,omitempty"`
}

type reservationResponse struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	CustomerName    string      `json:"customer_name,omitempty"`
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	PetName         string      `json:"pet_name"`
	PetBreed        string      `json:"pet_breed"`
	StartDate       string      `json:"start_date"`
	EndDate         string      `json:"end_date"`
	Status          Status      `json:"status"`
	KennelIDs       []string    `json:"kennel_ids"`
	KennelNumbers   []int       `json:"kennel_numbers,omitempty"`
	Services        servicesDTO `json:"services"`
	CreatedAt       time.Time   `json:"created_at"`
}

type occupantResponse struct {
	reservationResponse
	PetInfo *petInfoDTO `json:"pet_info,omitempty"`
}

type quoteResponse struct {
	DaysStayed        int   `json:"days_stayed"`
	PerDayRate        int64 `json:"per_day_rate"`
	Total             int64 `json:"total_bill"`
	// Tarifa que usa el checkout si el operador no la edita.
	DefaultPerDayRate int64 `json:"default_per_day_rate"`
}

type billResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	PetName       string    `json:"pet_name"`
	PetBreed      string    `json:"pet_breed"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	DaysStayed    int       `json:"days_stayed"`
	PerDayRate    int64     `json:"per_day_rate"`
	Total         int64     `json:"total_bill"`
	CreatedAt     time.Time `json:"created_at"`
}

type historyResponse struct {
	ID              string           `json:"id"`
	ReservationID   string           `json:"reservation_id"`
	CustomerID      string           `json:"customer_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	PetName         string           `json:"pet_name"`
	PetBreed        string           `json:"pet_breed"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Status          HistoricalStatus `json:"status"`
	KennelIDs       []string         `json:"kennel_ids"`
	Services        servicesDTO      `json:"services"`
	CreatedAt       time.Time        `json:"created_at"`
	ArchivedAt      time.Time        `json:"archived_at"`
}

// createReservationHandler godoc
// @Summary Crear reserva
// @Description Reutiliza el cliente si el teléfono ya existe. Los kennels pasan a reserved.
// @Tags reservations
// @Accept json
// @Produce json
// @Param payload body createReservationRequest true "Cliente, mascota, estadía, kennels y servicios"
// @Success 201 {object} reservationResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 409 {string} string "kennel not available"
// @Router /reservations [post]
func createReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseOptionalDate(req.StartDate)
		if err != nil {
			writeServiceError(w, validate.Field("start_date", "must be YYYY-MM-DD"))
			return
		}
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			writeServiceError(w, validate.Field("end_date", "must be YYYY-MM-DD"))
			return
		}

		res, err := svc.Create(r.Context(), CreateInput{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			PetName:         req.PetName,
			PetBreed:        req.PetBreed,
			StartDate:       start,
			EndDate:         end,
			KennelIDs:       req.KennelIDs,
			Services:        Services(req.Services),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		v, err := svc.Get(r.Context(), res.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReservationResponse(v))
	}
}

// listReservationsHandler godoc
// @Summary Listar reservas activas
// @Tags reservations
// @Produce json
// @Param q query string false "Nombre del cliente"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {array} reservationResponse
// @Router /reservations [get]
func listReservationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, to, ok := parseRange(w, q.Get("from"), q.Get("to"))
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), ListFilter{Query: q.Get("q"), From: from, To: to})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]reservationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toReservationResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(v))
	}
}

// updateReservationHandler godoc
// @Summary Editar reserva
// @Description Solo se modifican los campos presentes. pet_info se crea si no existe.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param payload body updateReservationRequest true "Campos a modificar"
// @Success 200 {object} reservationResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 404 {string} string "reservation not found"
// @Router /reservations/{reservationID} [patch]
func updateReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			PetName:         req.PetName,
			PetBreed:        req.PetBreed,
			Pickup:          req.Pickup,
			Groom:           req.Groom,
			Drop:            req.Drop,
		}
		if req.StartDate != nil {
			d, err := time.Parse(dateLayout, *req.StartDate)
			if err != nil {
				writeServiceError(w, validate.Field("start_date", "must be YYYY-MM-DD"))
				return
			}
			in.StartDate = &d
		}
		if req.EndDate != nil {
			d, err := time.Parse(dateLayout, *req.EndDate)
			if err != nil {
				writeServiceError(w, validate.Field("end_date", "must be YYYY-MM-DD"))
				return
			}
			in.EndDate = &d
		}
		if req.PetInfo != nil {
			in.PetInfo = &PetInfoInput{
				DietaryRequirements:     req.PetInfo.DietaryRequirements,
				SpecialCareInstructions: req.PetInfo.SpecialCareInstructions,
				MedicalNotes:            req.PetInfo.MedicalNotes,
			}
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "reservationID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(v))
	}
}

func petInfoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.PetInfo(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetInfoDTO(info))
	}
}

// confirmReservationHandler godoc
// @Summary Confirmar reserva
// @Description pending -> confirmed. Los kennels pasan a occupied.
// @Tags reservations
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} reservationResponse
// @Failure 404 {string} string "reservation not found"
// @Failure 409 {string} string "invalid reservation state"
// @Router /reservations/{reservationID}/confirm [post]
func confirmReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Confirm(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(View{Reservation: res}))
	}
}

// cancelReservationHandler godoc
// @Summary Cancelar reserva
// @Description Solo reservas pending. Libera kennels y archiva con estado canceled.
// @Tags reservations
// @Param reservationID path string true "Reservation ID"
// @Success 204
// @Failure 404 {string} string "reservation not found"
// @Failure 409 {string} string "invalid reservation state"
// @Router /reservations/{reservationID}/cancel [post]
func cancelReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), chi.URLParam(r, "reservationID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// quoteBillHandler godoc
// @Summary Vista previa de la factura
// @Tags reservations
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param rate query int false "Tarifa diaria (default configurada)"
// @Success 200 {object} quoteResponse
// @Router /reservations/{reservationID}/bill [get]
func quoteBillHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rate int64
		if v := strings.TrimSpace(r.URL.Query().Get("rate")); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				writeServiceError(w, validate.Field("rate", "must be a non-negative integer"))
				return
			}
			rate = n
		}

		q, err := svc.QuoteBill(r.Context(), chi.URLParam(r, "reservationID"), rate)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quoteResponse{
			DaysStayed:        q.DaysStayed,
			PerDayRate:        q.PerDayRate,
			Total:             q.Total,
			DefaultPerDayRate: svc.DefaultPerDayRate(),
		})
	}
}

// checkoutHandler godoc
// @Summary Checkout
// @Description Genera factura, analytics e historial; libera kennels y borra la reserva activa.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param payload body checkoutRequest false "Tarifa diaria y total editado"
// @Success 201 {object} billResponse
// @Failure 404 {string} string "reservation not found"
// @Failure 409 {string} string "invalid reservation state"
// @Router /reservations/{reservationID}/checkout [post]
func checkoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		// Body opcional: sin body se usa la tarifa por defecto.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bill, err := svc.Checkout(r.Context(), chi.URLParam(r, "reservationID"), CheckoutInput{
			PerDayRate:    req.PerDayRate,
			TotalOverride: req.Total,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBillResponse(bill))
	}
}

// occupantHandler godoc
// @Summary Reserva que ocupa un kennel
// @Tags reservations
// @Produce json
// @Param kennelID path string true "Kennel ID"
// @Success 200 {object} occupantResponse
// @Failure 404 {string} string "reservation not found"
// @Router /reservations/by-kennel/{kennelID} [get]
func occupantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		occ, err := svc.Occupant(r.Context(), chi.URLParam(r, "kennelID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := occupantResponse{reservationResponse: toReservationResponse(occ.View)}
		if occ.PetInfo != nil {
			dto := toPetInfoDTO(*occ.PetInfo)
			out.PetInfo = &dto
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// historyHandler godoc
// @Summary Historial de reservas (vista de clientes)
// @Tags customers
// @Produce json
// @Param q query string false "Cliente, mascota o raza"
// @Param status query string false "canceled | checkout"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {array} historyResponse
// @Router /customers/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, to, ok := parseRange(w, q.Get("from"), q.Get("to"))
		if !ok {
			return
		}

		status := HistoricalStatus(strings.TrimSpace(q.Get("status")))
		if status != "" && status != HistoricalCanceled && status != HistoricalCheckout {
			writeServiceError(w, validate.Field("status", "must be one of: canceled checkout"))
			return
		}

		items, err := svc.History(r.Context(), HistoryFilter{Query: q.Get("q"), From: from, To: to, Status: status})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]historyResponse, 0, len(items))
		for _, h := range items {
			out = append(out, historyResponse{
				ID:              h.ID,
				ReservationID:   h.ReservationID,
				CustomerID:      h.CustomerID,
				CustomerName:    h.Customer.Name,
				CustomerPhone:   h.Customer.Phone,
				CustomerAddress: h.Customer.Address,
				PetName:         h.PetName,
				PetBreed:        h.PetBreed,
				StartDate:       h.StartDate.Format(dateLayout),
				EndDate:         h.EndDate.Format(dateLayout),
				Status:          h.Status,
				KennelIDs:       h.KennelIDs,
				Services:        servicesDTO(h.Services),
				CreatedAt:       h.CreatedAt,
				ArchivedAt:      h.ArchivedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func customerBillsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bills, err := svc.Bills(r.Context(), chi.URLParam(r, "customerID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]billResponse, 0, len(bills))
		for _, b := range bills {
			out = append(out, toBillResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func parseRange(w http.ResponseWriter, fromRaw, toRaw string) (time.Time, time.Time, bool) {
	from, err := parseOptionalDate(fromRaw)
	if err != nil {
		writeServiceError(w, validate.Field("from", "must be YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	to, err := parseOptionalDate(toRaw)
	if err != nil {
		writeServiceError(w, validate.Field("to", "must be YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func toReservationResponse(v View) reservationResponse {
	return reservationResponse{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		CustomerName:    v.Customer.Name,
		CustomerPhone:   v.Customer.Phone,
		CustomerAddress: v.Customer.Address,
		PetName:         v.PetName,
		PetBreed:        v.PetBreed,
		StartDate:       v.StartDate.Format(dateLayout),
		EndDate:         v.EndDate.Format(dateLayout),
		Status:          v.Status,
		KennelIDs:       v.KennelIDs,
		KennelNumbers:   v.KennelNumbers,
		Services:        servicesDTO(v.Services),
		CreatedAt:       v.CreatedAt,
	}
}

func toPetInfoDTO(p PetInfo) petInfoDTO {
	return petInfoDTO{
		DietaryRequirements:     p.DietaryRequirements,
		SpecialCareInstructions: p.SpecialCareInstructions,
		MedicalNotes:            p.MedicalNotes,
	}
}

func toBillResponse(b Bill) billResponse {
	return billResponse{
		ID:            b.ID,
		ReservationID: b.ReservationID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		PetName:       b.PetName,
		PetBreed:      b.PetBreed,
		CheckIn:       b.CheckIn.Format(dateLayout),
		CheckOut:      b.CheckOut.Format(dateLayout),
		DaysStayed:    b.DaysStayed,
		PerDayRate:    b.PerDayRate,
		Total:         b.Total,
		CreatedAt:     b.CreatedAt,
	}
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
		http.Error(w, "reservation not found", http.StatusNotFound)
	case errors.Is(err, ErrPetInfoNotFound):
		http.Error(w, "pet information not found", http.StatusNotFound)
	case errors.Is(err, customers.ErrNotFound):
		http.Error(w, "customer not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState), errors.Is(err, ErrKennelUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
