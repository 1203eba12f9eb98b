package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/tgidbot/internal/estimator"
	"github.com/edgard/tgidbot/internal/logger"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.db")
	db, err := NewDB(path, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db, logger.Discard()) })
	return NewStore(db, logger.Discard()), path
}

func TestNewDB_SeedsBuiltinPoints(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	points, err := store.CalibrationPoints(ctx)
	require.NoError(t, err)

	e, err := estimator.New(estimator.DefaultTable())
	require.NoError(t, err)
	assert.Equal(t, e.Points(), points)
}

func TestNewDB_ReopenIsNoChange(t *testing.T) {
	_, path := newTestStore(t)

	db, err := NewDB(path, logger.Discard())
	require.NoError(t, err)
	defer CloseDB(db, logger.Discard())

	points, err := NewStore(db, logger.Discard()).CalibrationPoints(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 43)
}

func TestUpsertCalibrationPoint(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertCalibrationPoint(ctx, estimator.Point{UserID: 1, CreatedAtMs: 1380000000000}))
	require.NoError(t, store.UpsertCalibrationPoint(ctx, estimator.Point{UserID: 2768409, CreatedAtMs: 1383000000000}))
	require.Error(t, store.UpsertCalibrationPoint(ctx, estimator.Point{UserID: -1, CreatedAtMs: 1}))

	points, err := store.CalibrationPoints(ctx)
	require.NoError(t, err)
	require.Len(t, points, 44)
	assert.Equal(t, estimator.Point{UserID: 1, CreatedAtMs: 1380000000000}, points[0])
	assert.Equal(t, estimator.Point{UserID: 2768409, CreatedAtMs: 1383000000000}, points[1])
}

func TestRunSQLMaintenance(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.RunSQLMaintenance(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.RunSQLMaintenance(ctx), context.Canceled)
}

func TestExtractDBNameFromPath(t *testing.T) {
	tests := map[string]string{
		"calibration.db":                     "calibration.db",
		"file:calibration.db":                "calibration.db",
		"file:/tmp/cal%20db.db?cache=shared": "/tmp/cal db.db",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractDBNameFromPath(in), in)
	}
}

func TestApplyMigrations_Errors(t *testing.T) {
	require.ErrorIs(t, ApplyMigrations(nil, "calibration.db", logger.Discard()), ErrNoConnection)

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "calibration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.ErrorIs(t, ApplyMigrations(db, "", logger.Discard()), ErrNoName)
}

func TestNewDB_BadPath(t *testing.T) {
	_, err := NewDB(filepath.Join(t.TempDir(), "missing", "calibration.db"), logger.Discard())
	require.Error(t, err)
}
