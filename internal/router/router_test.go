package router_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kennel-console/internal/router"
)

func TestHTTP_EndToEnd_ReservationLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Alta de kennels (quedan en Maintenance)
	kennelIDs := addKennels(t, ts.URL, 2)

	// 2) En Maintenance no se pueden reservar
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations", reservationPayload(kennelIDs[0]))
		if st != http.StatusConflict {
			t.Fatalf("expected 409 reserving a maintenance kennel, got %d body=%s", st, string(body))
		}
	}

	// 3) Se asignan al set A
	{
		st, body := doReq(t, ts.URL, "PUT", "/kennels/groups/A", map[string]any{"kennel_ids": kennelIDs})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 assign group, got %d body=%s", st, string(body))
		}
	}

	// 4) Reserva pending
	resID := createReservation(t, ts.URL, reservationPayload(kennelIDs[0]))

	// 5) El kennel ya no está disponible
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations", reservationPayload(kennelIDs[0]))
		if st != http.StatusConflict {
			t.Fatalf("expected 409 double booking, got %d body=%s", st, string(body))
		}
	}

	// 6) Ocupante del kennel
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations/by-kennel/"+kennelIDs[0], nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 occupant, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), resID) {
			t.Fatalf("occupant: expected reservation %s, body=%s", resID, string(body))
		}
	}

	// 7) Checkout antes de confirmar => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/reservations/"+resID+"/checkout", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 checkout of pending reservation, got %d", st)
		}
	}

	// 8) Confirmar
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations/"+resID+"/confirm", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm, got %d body=%s", st, string(body))
		}
	}

	// 9) Alimentación
	{
		st, body := doReq(t, ts.URL, "POST", "/feeding", map[string]any{
			"kennel_ids":   []string{kennelIDs[0]},
			"feeding_date": "2024-01-02",
			"feeding_time": "morning",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 mark fed, got %d body=%s", st, string(body))
		}
	}

	// 10) Presupuesto: 3 días * 400
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations/"+resID+"/bill", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 quote, got %d body=%s", st, string(body))
		}
		var q struct {
			DaysStayed        int   `json:"days_stayed"`
			Total             int64 `json:"total_bill"`
			DefaultPerDayRate int64 `json:"default_per_day_rate"`
		}
		_ = json.Unmarshal(body, &q)
		if q.DaysStayed != 3 || q.Total != 1200 || q.DefaultPerDayRate != 400 {
			t.Fatalf("unexpected quote %+v", q)
		}
	}

	// 11) Checkout con tarifa editada
	var customerID string
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations/"+resID+"/checkout", map[string]any{"per_day_rate": 500})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 checkout, got %d body=%s", st, string(body))
		}
		var bill struct {
			CustomerID string `json:"customer_id"`
			Total      int64  `json:"total_bill"`
		}
		_ = json.Unmarshal(body, &bill)
		if bill.Total != 1500 {
			t.Fatalf("expected total 1500, got %d", bill.Total)
		}
		customerID = bill.CustomerID
	}

	// 12) La reserva ya no está activa; queda en historial y facturas
	{
		st, _ := doReq(t, ts.URL, "GET", "/reservations/"+resID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after checkout, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/customers/history?status=checkout", nil)
		if st != http.StatusOK || !strings.Contains(string(body), resID) {
			t.Fatalf("expected reservation in history, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/customers/"+customerID+"/bills", nil)
		if st != http.StatusOK || !strings.Contains(string(body), resID) {
			t.Fatalf("expected bill for customer, got %d body=%s", st, string(body))
		}
	}

	// 13) Dashboard
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var d struct {
			TotalReservations int   `json:"total_reservations"`
			TotalRevenue      int64 `json:"total_revenue"`
			TotalKennels      int   `json:"total_kennels"`
		}
		_ = json.Unmarshal(body, &d)
		if d.TotalReservations != 1 || d.TotalRevenue != 1500 || d.TotalKennels != 2 {
			t.Fatalf("unexpected dashboard %+v", d)
		}
	}
}

func TestHTTP_CancelReleasesKennel(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	kennelIDs := addKennels(t, ts.URL, 1)
	if st, _ := doReq(t, ts.URL, "PUT", "/kennels/groups/A", map[string]any{"kennel_ids": kennelIDs}); st != http.StatusNoContent {
		t.Fatalf("expected 204 assign group, got %d", st)
	}

	resID := createReservation(t, ts.URL, reservationPayload(kennelIDs[0]))

	if st, body := doReq(t, ts.URL, "POST", "/reservations/"+resID+"/cancel", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 cancel, got %d body=%s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/kennels?status=available", nil)
	if st != http.StatusOK || !strings.Contains(string(body), kennelIDs[0]) {
		t.Fatalf("expected kennel available after cancel, got %d body=%s", st, string(body))
	}

	// Se puede volver a reservar
	createReservation(t, ts.URL, reservationPayload(kennelIDs[0]))
}

func TestHTTP_CreateReservation_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	payload := reservationPayload("k1")
	payload["start_date"] = "01/02/2024"

	st, _ := doReq(t, ts.URL, "POST", "/reservations", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/reservations", map[string]any{})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", st)
	}
}

func TestHTTP_KennelStream_RefetchesAfterChange(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/kennels/stream", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 stream, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	lines := bufio.NewScanner(res.Body)
	nextData := func() string {
		t.Helper()
		for lines.Scan() {
			if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok {
				return data
			}
		}
		t.Fatalf("stream ended before next event: %v", lines.Err())
		return ""
	}

	// 1) Overview inicial: sin kennels
	if data := nextData(); data != "[]" {
		t.Fatalf("expected empty initial overview, got %s", data)
	}

	// 2) Un alta dispara un overview nuevo
	kennelIDs := addKennels(t, ts.URL, 1)
	if data := nextData(); !strings.Contains(data, kennelIDs[0]) {
		t.Fatalf("expected refetched overview with %s, got %s", kennelIDs[0], data)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

func reservationPayload(kennelID string) map[string]any {
	return map[string]any{
		"customer_name":    "Ana Pérez",
		"customer_phone":   "555-0101",
		"customer_address": "Calle 1",
		"pet_name":         "Rex",
		"pet_breed":        "Beagle",
		"start_date":       "2024-01-01",
		"end_date":         "2024-01-03",
		"kennel_ids":       []string{kennelID},
		"services":         map[string]any{"groom": true},
	}
}

func addKennels(t *testing.T, baseURL string, count int) []string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/kennels", map[string]any{"count": count})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add kennels, got %d body=%s", st, string(body))
	}

	var resp []struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp) != count {
		t.Fatalf("add kennels: expected %d, body=%s", count, string(body))
	}
	ids := make([]string, 0, count)
	for _, k := range resp {
		ids = append(ids, k.ID)
	}
	return ids
}

func createReservation(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/reservations", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create reservation, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create reservation: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Operator-ID", "test-operator")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
