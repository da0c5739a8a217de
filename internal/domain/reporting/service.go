package reporting

import (
	"context"
	"fmt"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reservations"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	customers customers.Repository
	analytics reservations.AnalyticsRepository
	history   reservations.HistoryRepository
	kennels   kennels.Repository
}

func NewService(repos reservations.Repos) *Service {
	return &Service{
		customers: repos.Customers,
		analytics: repos.Analytics,
		history:   repos.History,
		kennels:   repos.Kennels,
	}
}

// Dashboard lee las cuatro colecciones en paralelo y las resume.
func (s *Service) Dashboard(ctx context.Context) (Summary, error) {
	var in Input

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Customers, err = s.customers.List(gctx)
		return wrap("customers", err)
	})
	g.Go(func() (err error) {
		in.Analytics, err = s.analytics.List(gctx)
		return wrap("analytics", err)
	})
	g.Go(func() (err error) {
		in.History, err = s.history.List(gctx)
		return wrap("historical reservations", err)
	})
	g.Go(func() (err error) {
		in.Kennels, err = s.kennels.List(gctx, kennels.ListFilter{})
		return wrap("kennels", err)
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Summarize(in), nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
