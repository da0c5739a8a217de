package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"kennel-console/internal/domain/reservations"

	"github.com/jackc/pgx/v5/pgtype"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schema string

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate aplica schema.sql. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn es el handle de los repos: pool (tx == nil) o una transacción abierta.
type conn struct {
	db *sql.DB
	tx *sql.Tx
}

func (c conn) q() querier {
	if c.tx != nil {
		return c.tx
	}
	return c.db
}

// atomic corre fn en la tx actual o, si no hay, en una propia.
func (c conn) atomic(ctx context.Context, fn func(q querier) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	return runTx(ctx, c.db, func(tx *sql.Tx) error { return fn(tx) })
}

func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Store implementa reservations.Store sobre *sql.DB.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repos() reservations.Repos {
	return conn{db: s.db}.repos()
}

// WithinTx: commit si fn devuelve nil, rollback en cualquier otro caso.
// Los avisos de kennels_changed salen recién con el commit.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r reservations.Repos) error) error {
	return runTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, conn{db: s.db, tx: tx}.repos())
	})
}

func (c conn) repos() reservations.Repos {
	return reservations.Repos{
		Kennels:      &KennelsRepo{c: c},
		Customers:    &CustomersRepo{c: c},
		Reservations: &ReservationsRepo{c: c},
		PetInfo:      &PetInfoRepo{c: c},
		History:      &HistoryRepo{c: c},
		Bills:        &BillsRepo{c: c},
		Analytics:    &AnalyticsRepo{c: c},
		Feeding:      &FeedingRepo{c: c},
	}
}

// textArray escanea TEXT[] a []string. pgtype.Map no es seguro para uso
// concurrente, así que se crea uno por scan.
func textArray(dst *[]string) sql.Scanner {
	return pgtype.NewMap().SQLScanner(dst)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
