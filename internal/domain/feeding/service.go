package feeding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/platform/validate"

	"github.com/google/uuid"
)

var ErrInvalidInput = validate.ErrInvalid

type Service struct {
	repo    Repository
	kennels kennels.Repository
	now     func() time.Time
}

func NewService(repo Repository, kennelRepo kennels.Repository) *Service {
	return &Service{
		repo:    repo,
		kennels: kennelRepo,
		now:     time.Now,
	}
}

// ListOccupiedKennelsGroupedBySet: los únicos kennels que se alimentan son los ocupados.
func (s *Service) ListOccupiedKennelsGroupedBySet(ctx context.Context) ([]kennels.Group, error) {
	items, err := s.kennels.List(ctx, kennels.ListFilter{Status: kennels.StatusOccupied})
	if err != nil {
		return nil, err
	}
	return kennels.GroupBySet(items), nil
}

// ListFedKennels devuelve los kennelIDs (ordenados) con al menos una fila fed para date/session.
func (s *Service) ListFedKennels(ctx context.Context, date time.Time, session Session) ([]string, error) {
	if date.IsZero() {
		return nil, validate.Field("date", "is required")
	}
	if !session.Valid() {
		return nil, validate.Field("session", "must be one of: morning noon")
	}

	d := Day(date)
	rows, err := s.repo.List(ctx, RecordFilter{Date: &d, Session: session, FedOnly: true})
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.KennelID]; ok {
			continue
		}
		seen[r.KennelID] = struct{}{}
		out = append(out, r.KennelID)
	}
	sort.Strings(out)
	return out, nil
}

type MarkInput struct {
	KennelIDs []string  `json:"kennel_ids" validate:"min=1"`
	Date      time.Time `json:"feeding_date" validate:"required"`
	Session   Session   `json:"feeding_time" validate:"oneof=morning noon"`
}

// MarkFed agrega una fila por kennel (append-only, no actualiza filas previas).
func (s *Service) MarkFed(ctx context.Context, in MarkInput) ([]Record, error) {
	in.KennelIDs = trimIDs(in.KennelIDs)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	day := Day(in.Date)
	rows := make([]Record, 0, len(in.KennelIDs))
	for _, id := range in.KennelIDs {
		rows = append(rows, Record{
			ID:        uuid.NewString(),
			KennelID:  id,
			Date:      day,
			Session:   in.Session,
			Fed:       true,
			Eaten:     true,
			CreatedAt: now,
		})
	}

	if err := s.repo.Insert(ctx, rows); err != nil {
		return nil, fmt.Errorf("feeding: mark fed: %w", err)
	}
	return rows, nil
}

type LogFilter struct {
	Date         *time.Time
	KennelNumber int
	KennelID     string
}

// Logs arma el historial plegado, con filtros opcionales por fecha, número o id de kennel.
func (s *Service) Logs(ctx context.Context, filter LogFilter) ([]Log, error) {
	rf := RecordFilter{}
	if filter.Date != nil {
		d := Day(*filter.Date)
		rf.Date = &d
	}
	if id := strings.TrimSpace(filter.KennelID); id != "" {
		rf.KennelIDs = []string{id}
	}

	rows, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, err
	}

	numbers, err := s.kennelNumbers(ctx, rows)
	if err != nil {
		return nil, err
	}

	logs := Fold(rows, numbers)
	if filter.KennelNumber <= 0 {
		return logs, nil
	}

	out := make([]Log, 0, len(logs))
	for _, l := range logs {
		if l.KennelNumber == filter.KennelNumber {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Service) kennelNumbers(ctx context.Context, rows []Record) (map[string]int, error) {
	ids := make([]string, 0)
	seen := map[string]struct{}{}
	for _, r := range rows {
		if _, ok := seen[r.KennelID]; ok {
			continue
		}
		seen[r.KennelID] = struct{}{}
		ids = append(ids, r.KennelID)
	}
	if len(ids) == 0 {
		return map[string]int{}, nil
	}

	ks, err := s.kennels.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(ks))
	for _, k := range ks {
		out[k.ID] = k.Number
	}
	return out, nil
}

// Day normaliza a fecha calendario (medianoche UTC) usando año/mes/día tal como vienen.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
