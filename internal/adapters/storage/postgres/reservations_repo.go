package postgres

import (
	"context"
	"strings"

	"kennel-console/internal/domain/reservations"
)

type ReservationsRepo struct {
	c conn
}

const reservationColumns = `
	id, customer_id, pet_name, pet_breed,
	start_date, end_date, status, kennel_ids,
	pickup, groom, dropoff, created_at`

func (r *ReservationsRepo) Create(ctx context.Context, res reservations.Reservation) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		res.ID,
		res.CustomerID,
		res.PetName,
		res.PetBreed,
		res.StartDate,
		res.EndDate,
		string(res.Status),
		res.KennelIDs,
		res.Services.Pickup,
		res.Services.Groom,
		res.Services.Drop,
		res.CreatedAt,
	)
	return err
}

func (r *ReservationsRepo) Update(ctx context.Context, res reservations.Reservation) error {
	result, err := r.c.q().ExecContext(ctx, `
		UPDATE reservations
		SET
			pet_name = $2,
			pet_breed = $3,
			start_date = $4,
			end_date = $5,
			status = $6,
			kennel_ids = $7,
			pickup = $8,
			groom = $9,
			dropoff = $10
		WHERE id = $1
	`,
		res.ID,
		res.PetName,
		res.PetBreed,
		res.StartDate,
		res.EndDate,
		string(res.Status),
		res.KennelIDs,
		res.Services.Pickup,
		res.Services.Groom,
		res.Services.Drop,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return reservations.ErrNotFound
	}
	return nil
}

func (r *ReservationsRepo) Delete(ctx context.Context, id string) error {
	result, err := r.c.q().ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return reservations.ErrNotFound
	}
	return nil
}

// GetByID dentro de una tx bloquea la fila: confirm/cancel/checkout concurrentes
// sobre la misma reserva se serializan.
func (r *ReservationsRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reservations.Reservation{}, reservations.ErrNotFound
	}

	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	if r.c.tx != nil {
		q += ` FOR UPDATE`
	}
	return scanReservation(r.c.q().QueryRowContext(ctx, q, id))
}

func (r *ReservationsRepo) List(ctx context.Context) ([]reservations.Reservation, error) {
	rows, err := r.c.q().QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationsRepo) FindByKennel(ctx context.Context, kennelID string) (reservations.Reservation, error) {
	row := r.c.q().QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE $1 = ANY(kennel_ids)
		ORDER BY created_at DESC
		LIMIT 1
	`, kennelID)
	return scanReservation(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (reservations.Reservation, error) {
	var res reservations.Reservation
	var status string
	if err := row.Scan(
		&res.ID,
		&res.CustomerID,
		&res.PetName,
		&res.PetBreed,
		&res.StartDate,
		&res.EndDate,
		&status,
		textArray(&res.KennelIDs),
		&res.Services.Pickup,
		&res.Services.Groom,
		&res.Services.Drop,
		&res.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return reservations.Reservation{}, reservations.ErrNotFound
		}
		return reservations.Reservation{}, err
	}
	res.Status = reservations.Status(status)
	res.StartDate = res.StartDate.UTC()
	res.EndDate = res.EndDate.UTC()
	return res, nil
}

type PetInfoRepo struct {
	c conn
}

func (r *PetInfoRepo) GetByReservation(ctx context.Context, reservationID string) (reservations.PetInfo, error) {
	var p reservations.PetInfo
	err := r.c.q().QueryRowContext(ctx, `
		SELECT id, reservation_id, kennel_id, dietary_requirements, special_care_instructions, medical_notes
		FROM pet_information
		WHERE reservation_id = $1
	`, reservationID).Scan(
		&p.ID,
		&p.ReservationID,
		&p.KennelID,
		&p.DietaryRequirements,
		&p.SpecialCareInstructions,
		&p.MedicalNotes,
	)
	if err != nil {
		if isNoRows(err) {
			return reservations.PetInfo{}, reservations.ErrPetInfoNotFound
		}
		return reservations.PetInfo{}, err
	}
	return p, nil
}

// Upsert usa reservation_id como clave de conflicto (1:1 con la reserva).
func (r *PetInfoRepo) Upsert(ctx context.Context, p reservations.PetInfo) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO pet_information (id, reservation_id, kennel_id, dietary_requirements, special_care_instructions, medical_notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reservation_id) DO UPDATE SET
			kennel_id = EXCLUDED.kennel_id,
			dietary_requirements = EXCLUDED.dietary_requirements,
			special_care_instructions = EXCLUDED.special_care_instructions,
			medical_notes = EXCLUDED.medical_notes
	`, p.ID, p.ReservationID, p.KennelID, p.DietaryRequirements, p.SpecialCareInstructions, p.MedicalNotes)
	return err
}

func (r *PetInfoRepo) DeleteByReservation(ctx context.Context, reservationID string) error {
	_, err := r.c.q().ExecContext(ctx, `DELETE FROM pet_information WHERE reservation_id = $1`, reservationID)
	return err
}

type HistoryRepo struct {
	c conn
}

func (r *HistoryRepo) Insert(ctx context.Context, h reservations.Historical) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO historical_reservations (
			id, reservation_id, customer_id, pet_name, pet_breed,
			start_date, end_date, status, kennel_ids,
			pickup, groom, dropoff, created_at, archived_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		h.ID,
		h.ReservationID,
		h.CustomerID,
		h.PetName,
		h.PetBreed,
		h.StartDate,
		h.EndDate,
		string(h.Status),
		h.KennelIDs,
		h.Services.Pickup,
		h.Services.Groom,
		h.Services.Drop,
		h.CreatedAt,
		h.ArchivedAt,
	)
	return err
}

func (r *HistoryRepo) List(ctx context.Context) ([]reservations.Historical, error) {
	rows, err := r.c.q().QueryContext(ctx, `
		SELECT
			id, reservation_id, customer_id, pet_name, pet_breed,
			start_date, end_date, status, kennel_ids,
			pickup, groom, dropoff, created_at, archived_at
		FROM historical_reservations
		ORDER BY archived_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Historical, 0)
	for rows.Next() {
		var h reservations.Historical
		var status string
		if err := rows.Scan(
			&h.ID,
			&h.ReservationID,
			&h.CustomerID,
			&h.PetName,
			&h.PetBreed,
			&h.StartDate,
			&h.EndDate,
			&status,
			textArray(&h.KennelIDs),
			&h.Services.Pickup,
			&h.Services.Groom,
			&h.Services.Drop,
			&h.CreatedAt,
			&h.ArchivedAt,
		); err != nil {
			return nil, err
		}
		h.Status = reservations.HistoricalStatus(status)
		h.StartDate = h.StartDate.UTC()
		h.EndDate = h.EndDate.UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}

type BillsRepo struct {
	c conn
}

func (r *BillsRepo) Insert(ctx context.Context, b reservations.Bill) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO bills (
			id, reservation_id, customer_id, customer_name, pet_name, pet_breed,
			check_in, check_out, days_stayed, per_day_rate, total_bill, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		b.ID,
		b.ReservationID,
		b.CustomerID,
		b.CustomerName,
		b.PetName,
		b.PetBreed,
		b.CheckIn,
		b.CheckOut,
		b.DaysStayed,
		b.PerDayRate,
		b.Total,
		b.CreatedAt,
	)
	return err
}

func (r *BillsRepo) ListByCustomer(ctx context.Context, customerID string) ([]reservations.Bill, error) {
	rows, err := r.c.q().QueryContext(ctx, `
		SELECT
			id, reservation_id, customer_id, customer_name, pet_name, pet_breed,
			check_in, check_out, days_stayed, per_day_rate, total_bill, created_at
		FROM bills
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Bill, 0)
	for rows.Next() {
		var b reservations.Bill
		if err := rows.Scan(
			&b.ID,
			&b.ReservationID,
			&b.CustomerID,
			&b.CustomerName,
			&b.PetName,
			&b.PetBreed,
			&b.CheckIn,
			&b.CheckOut,
			&b.DaysStayed,
			&b.PerDayRate,
			&b.Total,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.CheckIn = b.CheckIn.UTC()
		b.CheckOut = b.CheckOut.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

type AnalyticsRepo struct {
	c conn
}

func (r *AnalyticsRepo) Insert(ctx context.Context, a reservations.AnalyticsRow) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO analytics (
			id, customer_id, customer_name, customer_phone, customer_address,
			pet_name, pet_breed, start_date, end_date,
			days_stayed, per_day_rate, total_bill,
			pickup, groom, dropoff, kennel_ids, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		a.ID,
		a.CustomerID,
		a.CustomerName,
		a.CustomerPhone,
		a.CustomerAddress,
		a.PetName,
		a.PetBreed,
		a.StartDate,
		a.EndDate,
		a.DaysStayed,
		a.PerDayRate,
		a.Total,
		a.Services.Pickup,
		a.Services.Groom,
		a.Services.Drop,
		a.KennelIDs,
		a.CreatedAt,
	)
	return err
}

func (r *AnalyticsRepo) List(ctx context.Context) ([]reservations.AnalyticsRow, error) {
	rows, err := r.c.q().QueryContext(ctx, `
		SELECT
			id, customer_id, customer_name, customer_phone, customer_address,
			pet_name, pet_breed, start_date, end_date,
			days_stayed, per_day_rate, total_bill,
			pickup, groom, dropoff, kennel_ids, created_at
		FROM analytics
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.AnalyticsRow, 0)
	for rows.Next() {
		var a reservations.AnalyticsRow
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.CustomerName,
			&a.CustomerPhone,
			&a.CustomerAddress,
			&a.PetName,
			&a.PetBreed,
			&a.StartDate,
			&a.EndDate,
			&a.DaysStayed,
			&a.PerDayRate,
			&a.Total,
			&a.Services.Pickup,
			&a.Services.Groom,
			&a.Services.Drop,
			textArray(&a.KennelIDs),
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
