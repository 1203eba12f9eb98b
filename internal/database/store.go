package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/tgidbot/internal/estimator"
)

// Store reads and maintains the calibration_points table.
type Store interface {
	// CalibrationPoints returns every anchor point ordered by user id.
	CalibrationPoints(ctx context.Context) ([]estimator.Point, error)

	// UpsertCalibrationPoint inserts a point or replaces the timestamp of an
	// existing user id.
	UpsertCalibrationPoint(ctx context.Context, p estimator.Point) error

	// RunSQLMaintenance runs VACUUM and ANALYZE.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by db.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) CalibrationPoints(ctx context.Context) ([]estimator.Point, error) {
	var points []estimator.Point
	query := `SELECT user_id, created_at_ms FROM calibration_points ORDER BY user_id ASC;`
	if err := s.db.SelectContext(ctx, &points, query); err != nil {
		s.logger.ErrorContext(ctx, "Error loading calibration points", "error", err)
		return nil, fmt.Errorf("failed to load calibration points: %w", err)
	}

	s.logger.DebugContext(ctx, "Loaded calibration points", "count", len(points))
	return points, nil
}

func (s *sqlxStore) UpsertCalibrationPoint(ctx context.Context, p estimator.Point) error {
	if p.UserID < 0 {
		return fmt.Errorf("calibration user_id must not be negative, got %d", p.UserID)
	}

	query := `
        INSERT INTO calibration_points (user_id, created_at_ms)
        VALUES (:user_id, :created_at_ms)
        ON CONFLICT(user_id) DO UPDATE SET created_at_ms = excluded.created_at_ms;
    `
	if _, err := s.db.NamedExecContext(ctx, query, p); err != nil {
		s.logger.ErrorContext(ctx, "Error saving calibration point", "user_id", p.UserID, "error", err)
		return fmt.Errorf("failed to save calibration point %d: %w", p.UserID, err)
	}
	return nil
}

// RunSQLMaintenance runs outside a transaction because SQLite refuses VACUUM
// inside one.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.ErrorContext(ctx, "ANALYZE failed", "error", err)
		return fmt.Errorf("failed to analyze database: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
