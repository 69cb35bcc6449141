package repository

import (
	"context"
	"time"

	"safewatch-data/internal/domain"
)

// ActivityKindTotal aggregated tracked time for one activity kind.
type ActivityKindTotal struct {
	ActivityType domain.ActivityKind
	TotalSeconds int64
	Count        int
}

// ActivitiesRepository activity interval state. The session tracker is the
// only writer; invariant: at most one open interval (end_time IS NULL) per
// device, enforced by a partial unique index plus the conditional close.
type ActivitiesRepository interface {
	// GetOpenInterval returns the device's open interval, most recent by
	// start time, or nil, nil when the device has no open interval.
	GetOpenInterval(ctx context.Context, deviceID string) (*domain.ActivityInterval, error)

	// OpenInterval creates a new open interval and returns its id.
	OpenInterval(ctx context.Context, deviceID string, kind domain.ActivityKind, confidence float64, start time.Time) (string, error)

	// CloseInterval sets end_time and the server-computed duration on an
	// interval that is still open. Closing an already-closed interval is
	// a persistence fault (lost check-and-set race).
	CloseInterval(ctx context.Context, intervalID string, end time.Time) error

	// SummaryForRange aggregates closed-interval durations per kind for
	// intervals started within [from, to).
	SummaryForRange(ctx context.Context, deviceID string, from, to time.Time) ([]ActivityKindTotal, error)
}
