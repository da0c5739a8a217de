package memory

import (
	"context"
	"errors"
	"sort"

	"kennel-console/internal/domain/kennels"

	"github.com/google/uuid"
)

type kennelRepo struct {
	ss session
}

func (r *kennelRepo) List(ctx context.Context, filter kennels.ListFilter) ([]kennels.Kennel, error) {
	out := make([]kennels.Kennel, 0)
	r.ss.read(func(t *tables) {
		for _, k := range t.kennels {
			if filter.Status != "" && k.Status != filter.Status {
				continue
			}
			if filter.Group != "" && k.Group != filter.Group {
				continue
			}
			if filter.ExcludeGroup != "" && k.Group == filter.ExcludeGroup {
				continue
			}
			out = append(out, k)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// GetByIDs omite los ids que no existen; el orden es por número.
func (r *kennelRepo) GetByIDs(ctx context.Context, ids []string) ([]kennels.Kennel, error) {
	out := make([]kennels.Kennel, 0, len(ids))
	r.ss.read(func(t *tables) {
		seen := map[string]struct{}{}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if k, ok := t.kennels[id]; ok {
				out = append(out, k)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *kennelRepo) AddSequential(ctx context.Context, count int, group string, status kennels.Status) ([]kennels.Kennel, error) {
	if count <= 0 {
		return nil, errors.New("count must be positive")
	}

	added := make([]kennels.Kennel, 0, count)
	err := r.ss.write(func(t *tables) error {
		max := 0
		for _, k := range t.kennels {
			if k.Number > max {
				max = k.Number
			}
		}
		now := r.ss.s.now()
		for i := 1; i <= count; i++ {
			k := kennels.Kennel{
				ID:        uuid.NewString(),
				Number:    max + i,
				Group:     group,
				Status:    status,
				CreatedAt: now,
			}
			t.kennels[k.ID] = k
			added = append(added, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.ss.kennelChanged(kennels.ChangeInsert)
	return added, nil
}

func (r *kennelRepo) SetStatus(ctx context.Context, ids []string, status kennels.Status) error {
	return r.update(ids, func(k *kennels.Kennel) { k.Status = status })
}

func (r *kennelRepo) SetGroup(ctx context.Context, ids []string, group string) error {
	return r.update(ids, func(k *kennels.Kennel) { k.Group = group })
}

func (r *kennelRepo) RenameGroup(ctx context.Context, from, to string) (int, error) {
	n := 0
	err := r.ss.write(func(t *tables) error {
		for id, k := range t.kennels {
			if k.Group == from {
				k.Group = to
				t.kennels[id] = k
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.ss.kennelChanged(kennels.ChangeUpdate)
	}
	return n, nil
}

// update es todo o nada: si falta un id no se toca ninguno.
func (r *kennelRepo) update(ids []string, fn func(k *kennels.Kennel)) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.ss.write(func(t *tables) error {
		for _, id := range ids {
			if _, ok := t.kennels[id]; !ok {
				return kennels.ErrNotFound
			}
		}
		for _, id := range ids {
			k := t.kennels[id]
			fn(&k)
			t.kennels[id] = k
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.ss.kennelChanged(kennels.ChangeUpdate)
	return nil
}
