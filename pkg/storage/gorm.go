// Package storage provides storage implementations for the wrappers package.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
)

// GormStore implements core.RecordStore using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed record store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB returns the underlying database handle.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// IsSQLite reports whether the store is backed by SQLite.
func (s *GormStore) IsSQLite() bool {
	return s.db != nil && s.db.Dialector.Name() == "sqlite"
}

// Migrate creates the necessary tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&core.Record{})
}

// SaveRecord persists r. A missing ID is generated and the error message is
// sanitized before storage.
func (s *GormStore) SaveRecord(ctx context.Context, r *core.Record) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = core.RecordCompleted
	}
	r.Error = security.SanitizeErrorMessage(r.Error)
	return s.db.WithContext(ctx).Create(r).Error
}

// GetRecord retrieves a record by ID. It returns nil without an error when
// no such record exists.
func (s *GormStore) GetRecord(ctx context.Context, id string) (*core.Record, error) {
	var r core.Record
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecords returns the newest records first. An empty name lists all
// wrappers; limit is clamped to security.MaxListLimit.
func (s *GormStore) ListRecords(ctx context.Context, name string, limit int) ([]*core.Record, error) {
	var records []*core.Record
	q := s.db.WithContext(ctx).Order("started_at DESC, created_at DESC")
	if name != "" {
		q = q.Where("name = ?", name)
	}
	err := q.Limit(security.ClampLimit(limit)).Find(&records).Error
	return records, err
}

// CountByStatus returns record counts grouped by status.
func (s *GormStore) CountByStatus(ctx context.Context, name string) (map[core.RecordStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	q := s.db.WithContext(ctx).
		Model(&core.Record{}).
		Select("status, count(*) as count")
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if err := q.Group("status").Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[core.RecordStatus]int64, len(rows))
	for _, r := range rows {
		counts[core.RecordStatus(r.Status)] = r.Count
	}
	return counts, nil
}

// DeleteRecordsBefore removes records that started before the given time.
func (s *GormStore) DeleteRecordsBefore(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("started_at < ?", before).
		Delete(&core.Record{})
	return result.RowsAffected, result.Error
}

var _ core.RecordStore = (*GormStore)(nil)
