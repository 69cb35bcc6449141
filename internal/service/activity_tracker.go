package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/repository"
)

// TrackStatus outcome of one activity observation.
type TrackStatus string

const (
	TrackStarted   TrackStatus = "started"
	TrackContinued TrackStatus = "continued"
	TrackChanged   TrackStatus = "changed"
)

// TrackResult session decision for one observation. Previous is only set
// when Status is TrackChanged.
type TrackResult struct {
	Status     TrackStatus
	Previous   domain.ActivityKind
	Current    domain.ActivityKind
	IntervalID string
}

// ActivityTracker decides whether an activity observation continues the
// device's current session or starts a new one. The open interval is
// re-read from storage on every call; no session state is kept in process.
type ActivityTracker struct {
	activities repository.ActivitiesRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewActivityTracker creates the tracker.
func NewActivityTracker(activities repository.ActivitiesRepository, logger *zap.Logger) *ActivityTracker {
	return &ActivityTracker{
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// Track applies one (kind, confidence) observation for a device.
//
// No open interval: open a new one. Same kind as the open interval: no
// mutation; the stored confidence is deliberately left at the value the
// session was opened with. Different kind: close the open interval (end
// and duration computed server-side) and open a new one.
func (t *ActivityTracker) Track(ctx context.Context, deviceID string, kind domain.ActivityKind, confidence float64) (*TrackResult, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("Invalid activity type")
	}

	open, err := t.activities.GetOpenInterval(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	now := t.now()

	if open == nil {
		id, err := t.activities.OpenInterval(ctx, deviceID, kind, confidence, now)
		if err != nil {
			return nil, err
		}
		t.logger.Info("activity session started",
			zap.String("device_id", deviceID),
			zap.String("activity_type", string(kind)),
		)
		return &TrackResult{Status: TrackStarted, Current: kind, IntervalID: id}, nil
	}

	if open.ActivityType == kind {
		return &TrackResult{Status: TrackContinued, Current: kind, IntervalID: open.ID}, nil
	}

	if err := t.activities.CloseInterval(ctx, open.ID, now); err != nil {
		return nil, err
	}
	id, err := t.activities.OpenInterval(ctx, deviceID, kind, confidence, now)
	if err != nil {
		return nil, err
	}
	t.logger.Info("activity session changed",
		zap.String("device_id", deviceID),
		zap.String("previous", string(open.ActivityType)),
		zap.String("current", string(kind)),
	)
	return &TrackResult{
		Status:     TrackChanged,
		Previous:   open.ActivityType,
		Current:    kind,
		IntervalID: id,
	}, nil
}
