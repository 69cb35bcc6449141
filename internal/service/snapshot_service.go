package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/repository"
)

// SnapshotService composes the latest-state view for the dashboard from
// five independent reads. Absence of any sub-result degrades to its
// documented default; only a storage fault fails the assembly.
type SnapshotService struct {
	devices    repository.DevicesRepository
	telemetry  repository.TelemetryRepository
	activities repository.ActivitiesRepository
	falls      repository.FallsRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewSnapshotService creates the assembler.
func NewSnapshotService(
	devices repository.DevicesRepository,
	telemetry repository.TelemetryRepository,
	activities repository.ActivitiesRepository,
	falls repository.FallsRepository,
	logger *zap.Logger,
) *SnapshotService {
	return &SnapshotService{
		devices:    devices,
		telemetry:  telemetry,
		activities: activities,
		falls:      falls,
		logger:     logger,
		now:        time.Now,
	}
}

// Snapshot assembles the latest state for one device. "Today" is the
// server-local calendar day of the request.
func (s *SnapshotService) Snapshot(ctx context.Context, deviceID string) (*domain.Snapshot, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	device, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	gps, err := s.latestGPS(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	current, err := s.currentActivity(ctx, deviceID, now)
	if err != nil {
		return nil, err
	}

	todayFalls, err := s.todayFalls(ctx, deviceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	summary, err := s.activitySummary(ctx, deviceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	latestSensor, err := s.telemetry.LatestSensorReading(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		DeviceInfo:      device,
		GPS:             gps,
		CurrentActivity: current,
		TodayFalls:      todayFalls,
		ActivitySummary: summary,
		LatestSensor:    latestSensor,
	}, nil
}

func (s *SnapshotService) latestGPS(ctx context.Context, deviceID string) (domain.GPSStatus, error) {
	fix, err := s.telemetry.LatestGPSFix(ctx, deviceID)
	if err != nil {
		return domain.GPSStatus{}, err
	}
	if fix == nil {
		return domain.GPSStatus{
			Latitude:  domain.DefaultLatitude,
			Longitude: domain.DefaultLongitude,
		}, nil
	}
	ts := fix.Timestamp
	return domain.GPSStatus{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
		Timestamp: &ts,
	}, nil
}

func (s *SnapshotService) currentActivity(ctx context.Context, deviceID string, now time.Time) (domain.CurrentActivity, error) {
	open, err := s.activities.GetOpenInterval(ctx, deviceID)
	if err != nil {
		return domain.CurrentActivity{}, err
	}
	if open == nil {
		return domain.CurrentActivity{ActivityType: domain.ActivityUnknown}, nil
	}

	minutes := int(now.Sub(open.StartTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	start := open.StartTime
	return domain.CurrentActivity{
		ActivityType:    open.ActivityType,
		Confidence:      open.Confidence,
		StartTime:       &start,
		DurationMinutes: minutes,
	}, nil
}

func (s *SnapshotService) todayFalls(ctx context.Context, deviceID string, from, to time.Time) (domain.TodayFalls, error) {
	falls, err := s.falls.ListFallsBetween(ctx, deviceID, from, to)
	if err != nil {
		return domain.TodayFalls{}, err
	}
	if falls == nil {
		falls = []domain.FallEvent{}
	}
	return domain.TodayFalls{Count: len(falls), Events: falls}, nil
}

func (s *SnapshotService) activitySummary(ctx context.Context, deviceID string, from, to time.Time) (domain.ActivitySummary, error) {
	totals, err := s.activities.SummaryForRange(ctx, deviceID, from, to)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	summary := domain.ActivitySummary{
		Activities: make(map[domain.ActivityKind]domain.ActivityKindStat, len(totals)),
	}
	for _, t := range totals {
		minutes := int(math.Round(float64(t.TotalSeconds) / 60.0))
		summary.Activities[t.ActivityType] = domain.ActivityKindStat{
			Minutes: minutes,
			Count:   t.Count,
		}
		summary.TotalMinutes += minutes
	}

	if summary.TotalMinutes == 0 {
		// No tracked minutes today: report zero activities rather than a
		// set of kinds all at 0%.
		summary.Activities = map[domain.ActivityKind]domain.ActivityKindStat{}
		return summary, nil
	}

	for kind, stat := range summary.Activities {
		share := float64(stat.Minutes) / float64(summary.TotalMinutes) * 100
		stat.Percentage = math.Round(share*10) / 10
		summary.Activities[kind] = stat
	}
	return summary, nil
}
