package memory

import (
	"context"
	"sort"

	"kennel-console/internal/domain/feeding"
)

type feedingRepo struct {
	ss session
}

func (r *feedingRepo) Insert(ctx context.Context, rows []feeding.Record) error {
	if len(rows) == 0 {
		return nil
	}
	return r.ss.write(func(t *tables) error {
		t.feeding = append(t.feeding, rows...)
		return nil
	})
}

func (r *feedingRepo) List(ctx context.Context, f feeding.RecordFilter) ([]feeding.Record, error) {
	kennelSet := make(map[string]struct{}, len(f.KennelIDs))
	for _, id := range f.KennelIDs {
		kennelSet[id] = struct{}{}
	}

	out := make([]feeding.Record, 0)
	r.ss.read(func(t *tables) {
		for _, rec := range t.feeding {
			if f.Date != nil && !rec.Date.Equal(*f.Date) {
				continue
			}
			if f.Session != "" && rec.Session != f.Session {
				continue
			}
			if len(kennelSet) > 0 {
				if _, ok := kennelSet[rec.KennelID]; !ok {
					continue
				}
			}
			if f.FedOnly && !rec.Fed {
				continue
			}
			out = append(out, rec)
		}
	})

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *feedingRepo) DeleteByKennels(ctx context.Context, kennelIDs []string) error {
	if len(kennelIDs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(kennelIDs))
	for _, id := range kennelIDs {
		set[id] = struct{}{}
	}
	return r.ss.write(func(t *tables) error {
		kept := t.feeding[:0:0]
		for _, rec := range t.feeding {
			if _, drop := set[rec.KennelID]; !drop {
				kept = append(kept, rec)
			}
		}
		t.feeding = kept
		return nil
	})
}
