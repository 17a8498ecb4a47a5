package core

import (
	"context"
	"time"
)

// RecordStore defines the persistence layer for invocation records.
type RecordStore interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	SaveRecord(ctx context.Context, r *Record) error
	GetRecord(ctx context.Context, id string) (*Record, error)

	// ListRecords returns the newest records first. An empty name lists all.
	ListRecords(ctx context.Context, name string, limit int) ([]*Record, error)
	CountByStatus(ctx context.Context, name string) (map[RecordStatus]int64, error)
	DeleteRecordsBefore(ctx context.Context, before time.Time) (int64, error)
}
