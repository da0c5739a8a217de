package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"

	"kennel-console/internal/domain/reservations"
)

type reservationRepo struct {
	ss session
}

func cloneReservation(r reservations.Reservation) reservations.Reservation {
	r.KennelIDs = slices.Clone(r.KennelIDs)
	return r
}

func (r *reservationRepo) Create(ctx context.Context, res reservations.Reservation) error {
	if strings.TrimSpace(res.ID) == "" {
		return errors.New("reservation id required")
	}
	return r.ss.write(func(t *tables) error {
		if _, exists := t.reservations[res.ID]; exists {
			return errors.New("reservation already exists")
		}
		t.reservations[res.ID] = cloneReservation(res)
		return nil
	})
}

func (r *reservationRepo) Update(ctx context.Context, res reservations.Reservation) error {
	return r.ss.write(func(t *tables) error {
		if _, exists := t.reservations[res.ID]; !exists {
			return reservations.ErrNotFound
		}
		t.reservations[res.ID] = cloneReservation(res)
		return nil
	})
}

func (r *reservationRepo) Delete(ctx context.Context, id string) error {
	return r.ss.write(func(t *tables) error {
		if _, exists := t.reservations[id]; !exists {
			return reservations.ErrNotFound
		}
		delete(t.reservations, id)
		return nil
	})
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	var (
		res reservations.Reservation
		ok  bool
	)
	r.ss.read(func(t *tables) { res, ok = t.reservations[id] })
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return cloneReservation(res), nil
}

func (r *reservationRepo) List(ctx context.Context) ([]reservations.Reservation, error) {
	out := make([]reservations.Reservation, 0)
	r.ss.read(func(t *tables) {
		for _, res := range t.reservations {
			out = append(out, cloneReservation(res))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *reservationRepo) FindByKennel(ctx context.Context, kennelID string) (reservations.Reservation, error) {
	var (
		found reservations.Reservation
		ok    bool
	)
	r.ss.read(func(t *tables) {
		for _, res := range t.reservations {
			if slices.Contains(res.KennelIDs, kennelID) {
				// Si hubiera más de una, la más reciente.
				if !ok || res.CreatedAt.After(found.CreatedAt) {
					found, ok = res, true
				}
			}
		}
	})
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return cloneReservation(found), nil
}

type petInfoRepo struct {
	ss session
}

func (r *petInfoRepo) GetByReservation(ctx context.Context, reservationID string) (reservations.PetInfo, error) {
	var (
		p  reservations.PetInfo
		ok bool
	)
	r.ss.read(func(t *tables) { p, ok = t.petInfo[reservationID] })
	if !ok {
		return reservations.PetInfo{}, reservations.ErrPetInfoNotFound
	}
	return p, nil
}

func (r *petInfoRepo) Upsert(ctx context.Context, p reservations.PetInfo) error {
	return r.ss.write(func(t *tables) error {
		if prev, ok := t.petInfo[p.ReservationID]; ok {
			p.ID = prev.ID
		}
		t.petInfo[p.ReservationID] = p
		return nil
	})
}

// DeleteByReservation no falla si no había registro.
func (r *petInfoRepo) DeleteByReservation(ctx context.Context, reservationID string) error {
	return r.ss.write(func(t *tables) error {
		delete(t.petInfo, reservationID)
		return nil
	})
}

type historyRepo struct {
	ss session
}

func (r *historyRepo) Insert(ctx context.Context, h reservations.Historical) error {
	h.KennelIDs = slices.Clone(h.KennelIDs)
	return r.ss.write(func(t *tables) error {
		t.history = append(t.history, h)
		return nil
	})
}

func (r *historyRepo) List(ctx context.Context) ([]reservations.Historical, error) {
	var out []reservations.Historical
	r.ss.read(func(t *tables) {
		out = make([]reservations.Historical, 0, len(t.history))
		for _, h := range t.history {
			h.KennelIDs = slices.Clone(h.KennelIDs)
			out = append(out, h)
		}
	})
	return out, nil
}

type billRepo struct {
	ss session
}

func (r *billRepo) Insert(ctx context.Context, b reservations.Bill) error {
	return r.ss.write(func(t *tables) error {
		t.bills = append(t.bills, b)
		return nil
	})
}

func (r *billRepo) ListByCustomer(ctx context.Context, customerID string) ([]reservations.Bill, error) {
	out := make([]reservations.Bill, 0)
	r.ss.read(func(t *tables) {
		for _, b := range t.bills {
			if b.CustomerID == customerID {
				out = append(out, b)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type analyticsRepo struct {
	ss session
}

func (r *analyticsRepo) Insert(ctx context.Context, a reservations.AnalyticsRow) error {
	a.KennelIDs = slices.Clone(a.KennelIDs)
	return r.ss.write(func(t *tables) error {
		t.analytics = append(t.analytics, a)
		return nil
	})
}

func (r *analyticsRepo) List(ctx context.Context) ([]reservations.AnalyticsRow, error) {
	var out []reservations.AnalyticsRow
	r.ss.read(func(t *tables) {
		out = make([]reservations.AnalyticsRow, 0, len(t.analytics))
		for _, a := range t.analytics {
			a.KennelIDs = slices.Clone(a.KennelIDs)
			out = append(out, a)
		}
	})
	return out, nil
}
