package postgres

import (
	"context"
	"fmt"
	"strings"

	"kennel-console/internal/domain/feeding"
)

type FeedingRepo struct {
	c conn
}

// Insert es append-only: una fila por registro, todas en la misma tx.
func (r *FeedingRepo) Insert(ctx context.Context, rows []feeding.Record) error {
	if len(rows) == 0 {
		return nil
	}
	return r.c.atomic(ctx, func(q querier) error {
		for _, rec := range rows {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO feeding_schedule (id, kennel_id, feeding_date, feeding_time, fed, eaten, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, rec.ID, rec.KennelID, rec.Date, string(rec.Session), rec.Fed, rec.Eaten, rec.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FeedingRepo) List(ctx context.Context, f feeding.RecordFilter) ([]feeding.Record, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Date != nil {
		add("feeding_date = $%d", *f.Date)
	}
	if f.Session != "" {
		add("feeding_time = $%d", string(f.Session))
	}
	if len(f.KennelIDs) > 0 {
		add("kennel_id = ANY($%d)", f.KennelIDs)
	}
	if f.FedOnly {
		where = append(where, "fed")
	}

	q := `SELECT id, kennel_id, feeding_date, feeding_time, fed, eaten, created_at FROM feeding_schedule`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.c.q().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.Record, 0)
	for rows.Next() {
		var rec feeding.Record
		var session string
		if err := rows.Scan(&rec.ID, &rec.KennelID, &rec.Date, &session, &rec.Fed, &rec.Eaten, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Session = feeding.Session(session)
		rec.Date = rec.Date.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *FeedingRepo) DeleteByKennels(ctx context.Context, kennelIDs []string) error {
	if len(kennelIDs) == 0 {
		return nil
	}
	_, err := r.c.q().ExecContext(ctx, `DELETE FROM feeding_schedule WHERE kennel_id = ANY($1)`, kennelIDs)
	return err
}
