package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/database"
	"github.com/edgard/tgidbot/internal/estimator"
)

// LoadEstimator builds the account-age estimator from, in order of
// preference, the calibration store, the configured points, or the builtin
// table. store may be nil. With a store, configured points are first saved
// into it, replacing stored timestamps for the same user ids.
func LoadEstimator(ctx context.Context, cfg config.CalibrationConfig, store database.Store, logger *slog.Logger) (*estimator.Estimator, error) {
	log := logger.With("component", "calibration")

	var (
		e      *estimator.Estimator
		err    error
		source string
	)
	switch {
	case store != nil:
		source = "database"
		e, err = loadFromStore(ctx, store, cfg.Points, log)
	case len(cfg.Points) > 0:
		source = "config"
		e, err = estimator.FromPoints(cfg.Points)
	default:
		source = "builtin"
		e = estimator.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s calibration: %w", source, err)
	}

	for _, inv := range e.Inversions() {
		log.WarnContext(ctx, "Calibration table is not monotonic",
			"lower_id", inv.Lower.UserID, "lower_created", inv.Lower.Time(),
			"upper_id", inv.Upper.UserID, "upper_created", inv.Upper.Time())
	}
	log.InfoContext(ctx, "Calibration loaded", "source", source, "points", e.Len())
	return e, nil
}

func loadFromStore(ctx context.Context, store database.Store, seed []estimator.Point, log *slog.Logger) (*estimator.Estimator, error) {
	for _, p := range seed {
		if err := store.UpsertCalibrationPoint(ctx, p); err != nil {
			return nil, err
		}
	}
	if len(seed) > 0 {
		log.InfoContext(ctx, "Saved configured calibration points", "count", len(seed))
	}

	points, err := store.CalibrationPoints(ctx)
	if err != nil {
		return nil, err
	}
	return estimator.FromPoints(points)
}
