// Package estimator approximates when a Telegram account was created from its
// numeric user ID. Telegram assigns IDs roughly in increasing order, so a sparse
// table of accounts with known creation times is enough to interpolate the
// creation month of any account in between, and to give a one-sided bound for
// accounts outside the table's range.
package estimator

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Category classifies how an estimate relates to the calibration table.
type Category string

const (
	// CategoryOlderThan means the ID is below the smallest calibrated ID.
	CategoryOlderThan Category = "older_than"
	// CategoryNewerThan means the ID is above the largest calibrated ID.
	CategoryNewerThan Category = "newer_than"
	// CategoryApprox means the date was interpolated between two anchor points.
	CategoryApprox Category = "approx"
	// CategoryUnknown is returned only by an estimator without anchor points.
	CategoryUnknown Category = "unknown"
)

var (
	// ErrEmptyTable is returned when a calibration table has no entries.
	ErrEmptyTable = errors.New("calibration table is empty")
	// ErrDuplicateID is returned when two anchor points share a user ID.
	ErrDuplicateID = errors.New("duplicate user id in calibration table")
	// ErrNegativeID is returned for anchor points below zero. Telegram user
	// IDs are positive, and non-negative IDs keep every ID difference within
	// int64.
	ErrNegativeID = errors.New("negative user id in calibration table")
)

// Table maps a user ID to the account creation time in milliseconds since
// the Unix epoch. Entry order carries no meaning.
type Table map[int64]int64

// Point is a single calibration anchor.
type Point struct {
	UserID      int64 `db:"user_id"       mapstructure:"user_id"       validate:"min=0"`
	CreatedAtMs int64 `db:"created_at_ms" mapstructure:"created_at_ms"`
}

// Time returns the anchor's creation time in UTC.
func (p Point) Time() time.Time {
	return time.UnixMilli(p.CreatedAtMs).UTC()
}

// Result is the outcome of a single estimate.
type Result struct {
	Category Category
	// Period is the estimated month as "{month}/{year}", or "unknown".
	Period string
	// Time is the estimated instant (UTC). Zero for CategoryUnknown.
	Time time.Time
}

// Inversion describes two neighbouring anchors whose creation times go
// backwards while their IDs go forwards.
type Inversion struct {
	Lower Point
	Upper Point
}

// Estimator interpolates creation dates over an immutable, ID-sorted set of
// anchor points. It is safe for concurrent use.
type Estimator struct {
	points []Point
}

// New builds an Estimator from an unordered table.
func New(table Table) (*Estimator, error) {
	points := make([]Point, 0, len(table))
	for id, ms := range table {
		points = append(points, Point{UserID: id, CreatedAtMs: ms})
	}
	return FromPoints(points)
}

// FromPoints builds an Estimator from anchor points in any order.
func FromPoints(points []Point) (*Estimator, error) {
	if len(points) == 0 {
		return nil, ErrEmptyTable
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	if sorted[0].UserID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeID, sorted[0].UserID)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].UserID == sorted[i-1].UserID {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, sorted[i].UserID)
		}
	}

	return &Estimator{points: sorted}, nil
}

// MustNew is like New but panics on error. Intended for package-level tables.
func MustNew(table Table) *Estimator {
	e, err := New(table)
	if err != nil {
		panic(fmt.Sprintf("estimator: %v", err))
	}
	return e
}

// Len returns the number of anchor points.
func (e *Estimator) Len() int {
	if e == nil {
		return 0
	}
	return len(e.points)
}

// Points returns a copy of the anchor points sorted by user ID.
func (e *Estimator) Points() []Point {
	if e == nil {
		return nil
	}
	out := make([]Point, len(e.points))
	copy(out, e.points)
	return out
}

// Inversions lists neighbouring anchors whose timestamps decrease.
// Interpolation between them still works but yields dates outside the
// natural order.
func (e *Estimator) Inversions() []Inversion {
	if e == nil {
		return nil
	}
	var out []Inversion
	for i := 1; i < len(e.points); i++ {
		if e.points[i].CreatedAtMs < e.points[i-1].CreatedAtMs {
			out = append(out, Inversion{Lower: e.points[i-1], Upper: e.points[i]})
		}
	}
	return out
}

// Estimate returns the approximate creation period of userID.
func (e *Estimator) Estimate(userID int64) Result {
	if e == nil || len(e.points) == 0 {
		return Result{Category: CategoryUnknown, Period: string(CategoryUnknown)}
	}

	first := e.points[0]
	last := e.points[len(e.points)-1]

	switch {
	case userID < first.UserID:
		return newResult(CategoryOlderThan, first.CreatedAtMs)
	case userID > last.UserID:
		return newResult(CategoryNewerThan, last.CreatedAtMs)
	}

	lo := first
	for _, hi := range e.points {
		if userID > hi.UserID {
			lo = hi
			continue
		}
		if lo.UserID == hi.UserID {
			return newResult(CategoryApprox, lo.CreatedAtMs)
		}
		ratio := float64(userID-lo.UserID) / float64(hi.UserID-lo.UserID)
		ms := lo.CreatedAtMs + int64(ratio*float64(hi.CreatedAtMs-lo.CreatedAtMs))
		return newResult(CategoryApprox, ms)
	}

	// Unreachable: userID <= last.UserID guarantees a match above.
	return Result{Category: CategoryUnknown, Period: string(CategoryUnknown)}
}

func newResult(c Category, ms int64) Result {
	t := time.UnixMilli(ms).UTC()
	return Result{Category: c, Period: FormatPeriod(t), Time: t}
}

// FormatPeriod renders t as "{month}/{year}" with a 1-based month.
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%d/%04d", int(t.Month()), t.Year())
}
