package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/kennels"

	"golang.org/x/sync/errgroup"
)

// View es una reserva activa con los datos que muestra la lista.
type View struct {
	Reservation
	Customer      customers.Customer
	KennelNumbers []int
}

// Occupancy es lo que muestra el diálogo de detalle de un kennel ocupado.
type Occupancy struct {
	View
	PetInfo *PetInfo
}

type ListFilter struct {
	// Coincide con el nombre del cliente (case-insensitive).
	Query string
	// Estadías con start >= From y end <= To. Zero = sin límite.
	From time.Time
	To   time.Time
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]View, error) {
	repos := s.store.Repos()

	var (
		rows  []Reservation
		custs []customers.Customer
		ks    []kennels.Kennel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = repos.Reservations.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		custs, err = repos.Customers.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ks, err = repos.Kennels.List(gctx, kennels.ListFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCustomer := indexCustomers(custs)
	numbers := indexNumbers(ks)
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]View, 0, len(rows))
	for _, r := range rows {
		c := byCustomer[r.CustomerID]
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if !inRange(r.StartDate, r.EndDate, filter.From, filter.To) {
			continue
		}
		out = append(out, View{Reservation: r, Customer: c, KennelNumbers: kennelNumbers(r.KennelIDs, numbers)})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return View{}, ErrNotFound
	}
	repos := s.store.Repos()

	res, err := repos.Reservations.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, repos, res)
}

// Occupant devuelve la reserva activa que ocupa el kennel.
func (s *Service) Occupant(ctx context.Context, kennelID string) (Occupancy, error) {
	kennelID = strings.TrimSpace(kennelID)
	if kennelID == "" {
		return Occupancy{}, ErrNotFound
	}
	repos := s.store.Repos()

	res, err := repos.Reservations.FindByKennel(ctx, kennelID)
	if err != nil {
		return Occupancy{}, err
	}
	v, err := s.view(ctx, repos, res)
	if err != nil {
		return Occupancy{}, err
	}

	out := Occupancy{View: v}
	info, err := repos.PetInfo.GetByReservation(ctx, res.ID)
	switch {
	case err == nil:
		out.PetInfo = &info
	case !errors.Is(err, ErrPetInfoNotFound):
		return Occupancy{}, err
	}
	return out, nil
}

func (s *Service) view(ctx context.Context, repos Repos, res Reservation) (View, error) {
	var (
		cust customers.Customer
		ks   []kennels.Kennel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cust, err = repos.Customers.GetByID(gctx, res.CustomerID)
		if errors.Is(err, customers.ErrNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		if len(res.KennelIDs) == 0 {
			return nil
		}
		var err error
		ks, err = repos.Kennels.GetByIDs(gctx, res.KennelIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return View{}, fmt.Errorf("load reservation %s: %w", res.ID, err)
	}

	return View{Reservation: res, Customer: cust, KennelNumbers: kennelNumbers(res.KennelIDs, indexNumbers(ks))}, nil
}

// HistoryView es una fila del historial con los datos del cliente.
type HistoryView struct {
	Historical
	Customer customers.Customer
}

type HistoryFilter struct {
	// Coincide con nombre de cliente, mascota o raza.
	Query  string
	From   time.Time
	To     time.Time
	Status HistoricalStatus
}

// History alimenta la vista de clientes: historial archivado, más reciente primero.
func (s *Service) History(ctx context.Context, filter HistoryFilter) ([]HistoryView, error) {
	repos := s.store.Repos()

	var (
		rows  []Historical
		custs []customers.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = repos.History.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		custs, err = repos.Customers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCustomer := indexCustomers(custs)
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]HistoryView, 0, len(rows))
	for _, h := range rows {
		c := byCustomer[h.CustomerID]
		if filter.Status != "" && h.Status != filter.Status {
			continue
		}
		if q != "" && !containsAny(q, c.Name, h.PetName, h.PetBreed) {
			continue
		}
		if !inRange(h.StartDate, h.EndDate, filter.From, filter.To) {
			continue
		}
		out = append(out, HistoryView{Historical: h, Customer: c})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ArchivedAt.After(out[j].ArchivedAt) })
	return out, nil
}

func (s *Service) Bills(ctx context.Context, customerID string) ([]Bill, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, customers.ErrNotFound
	}
	return s.store.Repos().Bills.ListByCustomer(ctx, customerID)
}

func indexCustomers(cs []customers.Customer) map[string]customers.Customer {
	out := make(map[string]customers.Customer, len(cs))
	for _, c := range cs {
		out[c.ID] = c
	}
	return out
}

func indexNumbers(ks []kennels.Kennel) map[string]int {
	out := make(map[string]int, len(ks))
	for _, k := range ks {
		out[k.ID] = k.Number
	}
	return out
}

// kennelNumbers respeta el orden de ids; los kennels desconocidos se omiten.
func kennelNumbers(ids []string, numbers map[string]int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if n, ok := numbers[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

func inRange(start, end, from, to time.Time) bool {
	if !from.IsZero() && start.Before(dateOnly(from)) {
		return false
	}
	if !to.IsZero() && end.After(dateOnly(to)) {
		return false
	}
	return true
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
