package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/platform/broadcast"
	"kennel-console/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

const (
	kennelsChannel = "kennels_changed"

	defaultReconnectDelay = 2 * time.Second
)

// Feed escucha NOTIFY kennels_changed (lo emite el trigger de schema.sql) en
// una conexión pgx dedicada y lo reparte a los suscriptores. Implementa
// kennels.ChangeFeed.
type Feed struct {
	dsn            string
	log            logger.Logger
	reconnectDelay time.Duration

	b *broadcast.Broadcaster[kennels.Change]
}

type FeedOptions struct {
	Logger         logger.Logger
	ReconnectDelay time.Duration
}

func NewFeed(dsn string, opts FeedOptions) *Feed {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}
	return &Feed{
		dsn:            dsn,
		log:            log.With(map[string]any{"component": "kennels_feed"}),
		reconnectDelay: delay,
		b:              broadcast.New[kennels.Change](broadcast.DefaultBuffer),
	}
}

func (f *Feed) Subscribe(ctx context.Context) (<-chan kennels.Change, error) {
	return f.b.Subscribe(ctx), nil
}

// Run bloquea hasta que ctx termina. Si la conexión se corta, reconecta
// después de reconnectDelay.
func (f *Feed) Run(ctx context.Context) error {
	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		f.log.Warn("kennel feed disconnected", map[string]any{
			"error":    err,
			"retry_in": f.reconnectDelay.String(),
		})

		t := time.NewTimer(f.reconnectDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

func (f *Feed) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+kennelsChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	f.log.Info("kennel feed listening", nil)

	// Al (re)conectar se pudo haber perdido algo: los suscriptores releen.
	f.b.Publish(kennels.Change{Op: kennels.ChangeUpdate, At: time.Now()})

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return fmt.Errorf("wait: %w", err)
		}
		f.b.Publish(kennels.Change{Op: kennels.ChangeOp(n.Payload), At: time.Now()})
	}
}
