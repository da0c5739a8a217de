package breeds

import (
	"context"
	"errors"
	"sort"
	"strings"

	"kennel-console/internal/platform/logger"
)

var ErrUnavailable = errors.New("breed search unavailable")

// Searcher es el puerto hacia el proveedor externo de razas.
type Searcher interface {
	Search(ctx context.Context, prefix string) ([]string, error)
}

const maxSuggestions = 10

type Service struct {
	searcher Searcher
	log      logger.Logger
}

// NewService acepta searcher nil: la búsqueda responde ErrUnavailable.
func NewService(searcher Searcher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{searcher: searcher, log: log}
}

// Suggest devuelve hasta maxSuggestions nombres únicos, ordenados.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}
	if s.searcher == nil {
		return nil, ErrUnavailable
	}

	names, err := s.searcher.Search(ctx, prefix)
	if err != nil {
		s.log.Warn("breed search failed", map[string]any{"prefix": prefix, "error": err})
		return nil, errors.Join(ErrUnavailable, err)
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}
