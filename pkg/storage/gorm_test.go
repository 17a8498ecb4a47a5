package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

// newTestStore creates a fresh in-memory SQLite store for each test.
// The database is fully migrated and ready for use.
func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open in-memory sqlite")
	require.NoError(t, ConfigurePool(db), "configure pool")

	s := NewGormStore(db)
	require.NoError(t, s.Migrate(context.Background()), "migrate schema")
	return s
}

// newTestRecord builds a record that started at base+offset and ran for 1s.
func newTestRecord(name string, status core.RecordStatus, base time.Time, offset time.Duration) *core.Record {
	start := base.Add(offset)
	return &core.Record{
		Name:         name,
		Status:       status,
		ArgCount:     2,
		StartedAt:    start,
		CompletedAt:  start.Add(time.Second),
		ElapsedNanos: int64(time.Second),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor / detection
// ──────────────────────────────────────────────────────────────────────────────

func TestNewGormStore_IsSQLite(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.IsSQLite(), "should detect SQLite dialect")
}

func TestNewGormStore_DB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := NewGormStore(db)
	assert.Same(t, db, s.DB(), "DB() should return the same *gorm.DB passed in")
}

func TestNewGormStore_NilDB(t *testing.T) {
	s := NewGormStore(nil)
	assert.False(t, s.IsSQLite(), "nil db should not claim SQLite")
}

func TestOpenSQLite(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	assert.True(t, s.IsSQLite())
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveRecord / GetRecord
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveRecord_AssignsIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := &core.Record{Name: "sum", StartedAt: time.Now()}
	require.NoError(t, s.SaveRecord(ctx, r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, core.RecordCompleted, r.Status)

	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sum", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveRecord_PreservesExistingID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := newTestRecord("sum", core.RecordFailed, time.Now(), 0)
	r.ID = "custom-id"
	r.Error = "boom"
	require.NoError(t, s.SaveRecord(ctx, r))

	got, err := s.GetRecord(ctx, "custom-id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, core.RecordFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, time.Second, got.Elapsed())
	assert.Equal(t, 2, got.ArgCount)
}

func TestSaveRecord_SanitizesError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := newTestRecord("sum", core.RecordFailed, time.Now(), 0)
	r.Error = "bad\x00\x07value" + strings.Repeat("x", 5000)
	require.NoError(t, s.SaveRecord(ctx, r))

	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Error, "badvalue"))
	assert.True(t, strings.HasSuffix(got.Error, "..."))
}

func TestSaveRecord_DuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := newTestRecord("sum", core.RecordCompleted, time.Now(), 0)
	first.ID = "dup"
	require.NoError(t, s.SaveRecord(ctx, first))

	second := newTestRecord("sum", core.RecordCompleted, time.Now(), 0)
	second.ID = "dup"
	assert.Error(t, s.SaveRecord(ctx, second))
}

func TestGetRecord_ReturnsNilForMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetRecord(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListRecords
// ──────────────────────────────────────────────────────────────────────────────

func TestListRecords_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		r := newTestRecord("sum", core.RecordCompleted, base, time.Duration(i)*time.Minute)
		r.ArgCount = i
		require.NoError(t, s.SaveRecord(ctx, r))
	}

	records, err := s.ListRecords(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2, records[0].ArgCount)
	assert.Equal(t, 1, records[1].ArgCount)
	assert.Equal(t, 0, records[2].ArgCount)
}

func TestListRecords_FiltersByName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now()

	require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordCompleted, base, 0)))
	require.NoError(t, s.SaveRecord(ctx, newTestRecord("greet", core.RecordCompleted, base, time.Second)))
	require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordRejected, base, 2*time.Second)))

	records, err := s.ListRecords(ctx, "sum", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "sum", r.Name)
	}
}

func TestListRecords_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordCompleted, base, time.Duration(i)*time.Second)))
	}

	records, err := s.ListRecords(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Non-positive limits fall back to the maximum.
	records, err = s.ListRecords(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// CountByStatus / DeleteRecordsBefore
// ──────────────────────────────────────────────────────────────────────────────

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now()

	require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordCompleted, base, 0)))
	require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordCompleted, base, 0)))
	require.NoError(t, s.SaveRecord(ctx, newTestRecord("sum", core.RecordRejected, base, 0)))
	require.NoError(t, s.SaveRecord(ctx, newTestRecord("greet", core.RecordFailed, base, 0)))

	all, err := s.CountByStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all[core.RecordCompleted])
	assert.Equal(t, int64(1), all[core.RecordRejected])
	assert.Equal(t, int64(1), all[core.RecordFailed])

	sum, err := s.CountByStatus(ctx, "sum")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum[core.RecordFailed])
	assert.Len(t, sum, 2)
}

func TestCountByStatus_EmptyStore(t *testing.T) {
	counts, err := newTestStore(t).CountByStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestDeleteRecordsBefore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()

	old := newTestRecord("sum", core.RecordCompleted, now, -48*time.Hour)
	fresh := newTestRecord("sum", core.RecordCompleted, now, 0)
	require.NoError(t, s.SaveRecord(ctx, old))
	require.NoError(t, s.SaveRecord(ctx, fresh))

	n, err := s.DeleteRecordsBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.GetRecord(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetRecord(ctx, fresh.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
