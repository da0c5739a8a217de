package feeding

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, rows []Record) error
	List(ctx context.Context, filter RecordFilter) ([]Record, error)
	DeleteByKennels(ctx context.Context, kennelIDs []string) error
}

type RecordFilter struct {
	Date      *time.Time
	Session   Session
	KennelIDs []string
	FedOnly   bool
}
