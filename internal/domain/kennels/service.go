package kennels

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kennel-console/internal/platform/logger"
	"kennel-console/internal/platform/validate"
)

var (
	ErrInvalidInput    = validate.ErrInvalid
	ErrNotFound        = errors.New("kennel not found")
	ErrFeedUnavailable = errors.New("kennel change feed not configured")
)

type Service struct {
	repo Repository
	feed ChangeFeed
	log  logger.Logger
}

func NewService(repo Repository, feed ChangeFeed, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		feed: feed,
		log:  log.With(map[string]any{"component": "kennels"}),
	}
}

// ListAvailable devuelve kennels disponibles fuera de excludingGroup
// (el formulario de reserva excluye Maintenance).
func (s *Service) ListAvailable(ctx context.Context, excludingGroup string) ([]Kennel, error) {
	return s.repo.List(ctx, ListFilter{
		Status:       StatusAvailable,
		ExcludeGroup: strings.TrimSpace(excludingGroup),
	})
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Kennel, error) {
	if !status.Valid() {
		return nil, validate.Field("status", "unknown kennel status")
	}
	return s.repo.List(ctx, ListFilter{Status: status})
}

func (s *Service) ListByGroup(ctx context.Context, group string) ([]Kennel, error) {
	group = strings.TrimSpace(group)
	if group == "" {
		return nil, validate.Field("group", "is required")
	}
	return s.repo.List(ctx, ListFilter{Group: group})
}

func (s *Service) List(ctx context.Context) ([]Kennel, error) {
	return s.repo.List(ctx, ListFilter{})
}

// Overview agrupa todos los kennels por set (vista principal).
func (s *Service) Overview(ctx context.Context) ([]Group, error) {
	all, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return GroupBySet(all), nil
}

// SetStatus no valida transiciones: los workflows de reserva deciden el estado.
func (s *Service) SetStatus(ctx context.Context, ids []string, status Status) error {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return validate.Field("kennel_ids", "must have at least 1 item(s)")
	}
	if !status.Valid() {
		return validate.Field("status", "unknown kennel status")
	}
	if err := s.repo.SetStatus(ctx, ids, status); err != nil {
		return fmt.Errorf("kennels: set status: %w", err)
	}
	return nil
}

// AddKennels crea count kennels disponibles en Maintenance, numerados desde max+1.
func (s *Service) AddKennels(ctx context.Context, count int) ([]Kennel, error) {
	if count <= 0 {
		return nil, validate.Field("count", "must be greater than 0")
	}
	added, err := s.repo.AddSequential(ctx, count, MaintenanceGroup, StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("kennels: add: %w", err)
	}
	s.log.Info("kennels added", map[string]any{"count": count})
	return added, nil
}

func (s *Service) AssignToGroup(ctx context.Context, ids []string, group string) error {
	group = strings.TrimSpace(group)
	if group == "" {
		return validate.Field("group", "is required")
	}
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return validate.Field("kennel_ids", "must have at least 1 item(s)")
	}
	if err := s.repo.SetGroup(ctx, ids, group); err != nil {
		return fmt.Errorf("kennels: assign group: %w", err)
	}
	return nil
}

// ReleaseFromGroup devuelve el kennel al set Maintenance.
func (s *Service) ReleaseFromGroup(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return validate.Field("kennel_id", "is required")
	}
	if err := s.repo.SetGroup(ctx, []string{id}, MaintenanceGroup); err != nil {
		return fmt.Errorf("kennels: release: %w", err)
	}
	return nil
}

// RenameGroup re-etiqueta el set completo; el repo lo hace en una sola escritura.
func (s *Service) RenameGroup(ctx context.Context, from, to string) (int, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if from == "" {
		return 0, validate.Field("group", "is required")
	}
	if to == "" {
		return 0, validate.Field("name", "is required")
	}
	if from == MaintenanceGroup {
		return 0, validate.Field("group", "Maintenance cannot be renamed")
	}
	if from == to {
		return 0, nil
	}

	n, err := s.repo.RenameGroup(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("kennels: rename group: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	s.log.Info("kennel group renamed", map[string]any{"from": from, "to": to, "kennels": n})
	return n, nil
}

// Watch relee el overview completo cada vez que el feed avisa un cambio.
// El canal se cierra cuando ctx termina o el feed se corta.
func (s *Service) Watch(ctx context.Context) (<-chan []Group, error) {
	if s.feed == nil {
		return nil, ErrFeedUnavailable
	}
	changes, err := s.feed.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("kennels: subscribe: %w", err)
	}

	out := make(chan []Group, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				groups, err := s.Overview(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					s.log.Warn("kennel refetch failed", map[string]any{"error": err})
					continue
				}
				select {
				case out <- groups:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// GroupBySet agrupa preservando el orden de número dentro de cada set; sets en orden alfabético.
func GroupBySet(in []Kennel) []Group {
	idx := map[string]int{}
	out := make([]Group, 0)
	for _, k := range in {
		i, ok := idx[k.Group]
		if !ok {
			i = len(out)
			idx[k.Group] = i
			out = append(out, Group{Name: k.Group})
		}
		out[i].Kennels = append(out[i].Kennels, k)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for i := range out {
		ks := out[i].Kennels
		sort.SliceStable(ks, func(a, b int) bool { return ks[a].Number < ks[b].Number })
	}
	return out
}

func cleanIDs(ids []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
