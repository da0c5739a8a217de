package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/platform/validate"

	"github.com/google/uuid"
)

// Confirm: pending -> confirmed, kennels reserved -> occupied.
func (s *Service) Confirm(ctx context.Context, id string) (Reservation, error) {
	id = strings.TrimSpace(id)
	var out Reservation

	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		res, err := r.Reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != StatusPending {
			return fmt.Errorf("%w: cannot confirm a %s reservation", ErrBadState, res.Status)
		}

		res.Status = StatusConfirmed
		if err := r.Reservations.Update(ctx, res); err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		if err := r.Kennels.SetStatus(ctx, res.KennelIDs, kennels.StatusOccupied); err != nil {
			return fmt.Errorf("occupy kennels: %w", err)
		}
		out = res
		return nil
	})
	if err != nil {
		s.logFailure("confirm", id, err)
		return Reservation{}, err
	}

	s.log.Info("reservation confirmed", map[string]any{"reservation_id": id})
	return out, nil
}

// Cancel libera los kennels, archiva la reserva como canceled y la borra.
// Solo aplica a reservas pending.
func (s *Service) Cancel(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		res, err := r.Reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != StatusPending {
			return fmt.Errorf("%w: cannot cancel a %s reservation", ErrBadState, res.Status)
		}

		if err := r.Kennels.SetStatus(ctx, res.KennelIDs, kennels.StatusAvailable); err != nil {
			return fmt.Errorf("release kennels: %w", err)
		}
		if err := r.History.Insert(ctx, s.archive(res, HistoricalCanceled)); err != nil {
			return fmt.Errorf("archive reservation: %w", err)
		}
		return s.purge(ctx, r, res)
	})
	if err != nil {
		s.logFailure("cancel", id, err)
		return err
	}

	s.log.Info("reservation canceled", map[string]any{"reservation_id": id})
	return nil
}

// QuoteBill calcula la factura sin escribir nada. rate <= 0 usa la tarifa por defecto.
func (s *Service) QuoteBill(ctx context.Context, id string, rate int64) (BillQuote, error) {
	res, err := s.store.Repos().Reservations.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return BillQuote{}, err
	}
	if rate <= 0 {
		rate = s.defaultRate
	}
	return Quote(res, rate), nil
}

type CheckoutInput struct {
	// 0 = tarifa por defecto.
	PerDayRate int64
	// Si no es nil reemplaza days*rate (el operador puede editar el total).
	TotalOverride *int64
}

// Checkout cierra una reserva confirmed: analytics, bill e historial en una
// sola transacción, kennels a available y limpieza de pet info y feeding.
func (s *Service) Checkout(ctx context.Context, id string, in CheckoutInput) (Bill, error) {
	id = strings.TrimSpace(id)
	if in.PerDayRate < 0 {
		return Bill{}, validate.Field("per_day_rate", "must not be negative")
	}
	if in.TotalOverride != nil && *in.TotalOverride < 0 {
		return Bill{}, validate.Field("total", "must not be negative")
	}

	rate := in.PerDayRate
	if rate == 0 {
		rate = s.defaultRate
	}

	now := s.now()
	var bill Bill

	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		res, err := r.Reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != StatusConfirmed {
			return fmt.Errorf("%w: cannot check out a %s reservation", ErrBadState, res.Status)
		}
		cust, err := r.Customers.GetByID(ctx, res.CustomerID)
		if err != nil {
			return fmt.Errorf("load customer: %w", err)
		}

		q := Quote(res, rate)
		if in.TotalOverride != nil {
			q.Total = *in.TotalOverride
		}

		row := AnalyticsRow{
			ID:              uuid.NewString(),
			CustomerID:      cust.ID,
			CustomerName:    cust.Name,
			CustomerPhone:   cust.Phone,
			CustomerAddress: cust.Address,
			PetName:         res.PetName,
			PetBreed:        res.PetBreed,
			StartDate:       res.StartDate,
			EndDate:         res.EndDate,
			DaysStayed:      q.DaysStayed,
			PerDayRate:      q.PerDayRate,
			Total:           q.Total,
			Services:        res.Services,
			KennelIDs:       append([]string(nil), res.KennelIDs...),
			CreatedAt:       now,
		}
		if err := r.Analytics.Insert(ctx, row); err != nil {
			return fmt.Errorf("insert analytics: %w", err)
		}

		bill = Bill{
			ID:            uuid.NewString(),
			ReservationID: res.ID,
			CustomerID:    cust.ID,
			CustomerName:  cust.Name,
			PetName:       res.PetName,
			PetBreed:      res.PetBreed,
			CheckIn:       res.StartDate,
			CheckOut:      res.EndDate,
			DaysStayed:    q.DaysStayed,
			PerDayRate:    q.PerDayRate,
			Total:         q.Total,
			CreatedAt:     now,
		}
		if err := r.Bills.Insert(ctx, bill); err != nil {
			return fmt.Errorf("insert bill: %w", err)
		}

		if err := r.History.Insert(ctx, s.archive(res, HistoricalCheckout)); err != nil {
			return fmt.Errorf("archive reservation: %w", err)
		}
		if err := r.Kennels.SetStatus(ctx, res.KennelIDs, kennels.StatusAvailable); err != nil {
			return fmt.Errorf("release kennels: %w", err)
		}
		if err := r.Feeding.DeleteByKennels(ctx, res.KennelIDs); err != nil {
			return fmt.Errorf("clear feeding: %w", err)
		}
		return s.purge(ctx, r, res)
	})
	if err != nil {
		s.logFailure("checkout", id, err)
		return Bill{}, err
	}

	s.log.Info("reservation checked out", map[string]any{
		"reservation_id": id,
		"days":           bill.DaysStayed,
		"total":          bill.Total,
	})
	return bill, nil
}

func (s *Service) archive(res Reservation, status HistoricalStatus) Historical {
	return Historical{
		ID:            uuid.NewString(),
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		PetName:       res.PetName,
		PetBreed:      res.PetBreed,
		StartDate:     res.StartDate,
		EndDate:       res.EndDate,
		Status:        status,
		KennelIDs:     append([]string(nil), res.KennelIDs...),
		Services:      res.Services,
		CreatedAt:     res.CreatedAt,
		ArchivedAt:    s.now(),
	}
}

// purge borra pet info (si hay) y la reserva activa.
func (s *Service) purge(ctx context.Context, r Repos, res Reservation) error {
	if err := r.PetInfo.DeleteByReservation(ctx, res.ID); err != nil && !errors.Is(err, ErrPetInfoNotFound) {
		return fmt.Errorf("delete pet info: %w", err)
	}
	if err := r.Reservations.Delete(ctx, res.ID); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}
