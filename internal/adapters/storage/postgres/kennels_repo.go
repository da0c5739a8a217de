package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-console/internal/domain/kennels"

	"github.com/google/uuid"
)

type KennelsRepo struct {
	c conn
}

const kennelColumns = `id, kennel_number, set_name, status, created_at`

func (r *KennelsRepo) List(ctx context.Context, filter kennels.ListFilter) ([]kennels.Kennel, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.Group != "" {
		add("set_name = $%d", filter.Group)
	}
	if filter.ExcludeGroup != "" {
		add("set_name <> $%d", filter.ExcludeGroup)
	}

	q := `SELECT ` + kennelColumns + ` FROM kennels`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY set_name ASC, kennel_number ASC`

	rows, err := r.c.q().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanKennels(rows)
}

// GetByIDs dentro de una transacción bloquea las filas (FOR UPDATE): dos
// reservas concurrentes sobre el mismo kennel se serializan.
func (r *KennelsRepo) GetByIDs(ctx context.Context, ids []string) ([]kennels.Kennel, error) {
	if len(ids) == 0 {
		return []kennels.Kennel{}, nil
	}

	q := `SELECT ` + kennelColumns + ` FROM kennels WHERE id = ANY($1) ORDER BY kennel_number ASC`
	if r.c.tx != nil {
		q += ` FOR UPDATE`
	}

	rows, err := r.c.q().QueryContext(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	return scanKennels(rows)
}

func (r *KennelsRepo) AddSequential(ctx context.Context, count int, group string, status kennels.Status) ([]kennels.Kennel, error) {
	if count <= 0 {
		return nil, errors.New("count must be positive")
	}

	added := make([]kennels.Kennel, 0, count)
	err := r.c.atomic(ctx, func(q querier) error {
		// Bloquea inserts concurrentes hasta el commit: el max no cambia en el medio.
		if _, err := q.ExecContext(ctx, `LOCK TABLE kennels IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return err
		}

		var max int
		if err := q.QueryRowContext(ctx, `SELECT COALESCE(MAX(kennel_number), 0) FROM kennels`).Scan(&max); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := 1; i <= count; i++ {
			k := kennels.Kennel{
				ID:        uuid.NewString(),
				Number:    max + i,
				Group:     group,
				Status:    status,
				CreatedAt: now,
			}
			if _, err := q.ExecContext(ctx, `
				INSERT INTO kennels (id, kennel_number, set_name, status, created_at)
				VALUES ($1, $2, $3, $4, $5)
			`, k.ID, k.Number, k.Group, string(k.Status), k.CreatedAt); err != nil {
				return err
			}
			added = append(added, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (r *KennelsRepo) SetStatus(ctx context.Context, ids []string, status kennels.Status) error {
	return r.updateAll(ctx, `UPDATE kennels SET status = $2 WHERE id = ANY($1)`, ids, string(status))
}

func (r *KennelsRepo) SetGroup(ctx context.Context, ids []string, group string) error {
	return r.updateAll(ctx, `UPDATE kennels SET set_name = $2 WHERE id = ANY($1)`, ids, group)
}

// RenameGroup es un único UPDATE: ningún kennel queda a mitad de camino.
func (r *KennelsRepo) RenameGroup(ctx context.Context, from, to string) (int, error) {
	res, err := r.c.q().ExecContext(ctx, `UPDATE kennels SET set_name = $2 WHERE set_name = $1`, from, to)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// updateAll exige que existan todos los ids; si falta alguno hace rollback.
func (r *KennelsRepo) updateAll(ctx context.Context, stmt string, ids []string, v any) error {
	if len(ids) == 0 {
		return nil
	}
	return r.c.atomic(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, stmt, ids, v)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if int(n) != len(distinct(ids)) {
			return kennels.ErrNotFound
		}
		return nil
	})
}

func scanKennels(rows *sql.Rows) ([]kennels.Kennel, error) {
	defer rows.Close()

	out := make([]kennels.Kennel, 0)
	for rows.Next() {
		var k kennels.Kennel
		var status string
		if err := rows.Scan(&k.ID, &k.Number, &k.Group, &status, &k.CreatedAt); err != nil {
			return nil, err
		}
		k.Status = kennels.Status(status)
		out = append(out, k)
	}
	return out, rows.Err()
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
