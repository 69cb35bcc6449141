package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeDevicesRepo struct {
	devices        map[string]*domain.Device
	batteryUpdates []int
	getErr         error
	updateErr      error
}

func newFakeDevicesRepo() *fakeDevicesRepo {
	return &fakeDevicesRepo{devices: map[string]*domain.Device{}}
}

func (f *fakeDevicesRepo) GetDevice(_ context.Context, deviceID string) (*domain.Device, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.devices[deviceID], nil
}

func (f *fakeDevicesRepo) UpdateBatteryLevel(_ context.Context, deviceID string, level int, now time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.batteryUpdates = append(f.batteryUpdates, level)
	if d, ok := f.devices[deviceID]; ok {
		d.BatteryLevel = level
		d.UpdatedAt = now
	}
	return nil
}

type fakeTelemetryRepo struct {
	readings  []*domain.SensorReading
	fixes     []*domain.GPSFix
	obstacles []*domain.ObstacleDetection
	insertErr error
}

func (f *fakeTelemetryRepo) InsertSensorReading(_ context.Context, r *domain.SensorReading) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	r.ID = fmt.Sprintf("sensor-%d", len(f.readings)+1)
	f.readings = append(f.readings, r)
	return r.ID, nil
}

func (f *fakeTelemetryRepo) InsertGPSFix(_ context.Context, fix *domain.GPSFix) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	fix.ID = fmt.Sprintf("gps-%d", len(f.fixes)+1)
	f.fixes = append(f.fixes, fix)
	return fix.ID, nil
}

func (f *fakeTelemetryRepo) InsertObstacleDetection(_ context.Context, det *domain.ObstacleDetection) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	det.ID = fmt.Sprintf("obstacle-%d", len(f.obstacles)+1)
	f.obstacles = append(f.obstacles, det)
	return det.ID, nil
}

func (f *fakeTelemetryRepo) LatestGPSFix(_ context.Context, deviceID string) (*domain.GPSFix, error) {
	var latest *domain.GPSFix
	for _, fix := range f.fixes {
		if fix.DeviceID != deviceID {
			continue
		}
		if latest == nil || fix.Timestamp.After(latest.Timestamp) {
			latest = fix
		}
	}
	return latest, nil
}

func (f *fakeTelemetryRepo) LatestSensorReading(_ context.Context, deviceID string) (*domain.SensorReading, error) {
	var latest *domain.SensorReading
	for _, r := range f.readings {
		if r.DeviceID != deviceID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest, nil
}

type fakeActivitiesRepo struct {
	intervals []*domain.ActivityInterval
	summary   []repository.ActivityKindTotal
	nextID    int
	getErr    error
	openErr   error
	closeErr  error
}

func (f *fakeActivitiesRepo) GetOpenInterval(_ context.Context, deviceID string) (*domain.ActivityInterval, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var open []*domain.ActivityInterval
	for _, iv := range f.intervals {
		if iv.DeviceID == deviceID && iv.EndTime == nil {
			open = append(open, iv)
		}
	}
	if len(open) == 0 {
		return nil, nil
	}
	sort.Slice(open, func(i, j int) bool { return open[i].StartTime.After(open[j].StartTime) })
	cp := *open[0]
	return &cp, nil
}

func (f *fakeActivitiesRepo) OpenInterval(_ context.Context, deviceID string, kind domain.ActivityKind, confidence float64, start time.Time) (string, error) {
	if f.openErr != nil {
		return "", f.openErr
	}
	f.nextID++
	iv := &domain.ActivityInterval{
		ID:           fmt.Sprintf("interval-%d", f.nextID),
		DeviceID:     deviceID,
		ActivityType: kind,
		Confidence:   confidence,
		StartTime:    start,
	}
	f.intervals = append(f.intervals, iv)
	return iv.ID, nil
}

func (f *fakeActivitiesRepo) CloseInterval(_ context.Context, intervalID string, end time.Time) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	for _, iv := range f.intervals {
		if iv.ID == intervalID && iv.EndTime == nil {
			e := end
			iv.EndTime = &e
			dur := int64(end.Sub(iv.StartTime).Seconds())
			if dur < 0 {
				dur = 0
			}
			iv.DurationSeconds = &dur
			return nil
		}
	}
	return domain.NewPersistenceError("close activity interval", fmt.Errorf("interval %s not open", intervalID))
}

func (f *fakeActivitiesRepo) SummaryForRange(_ context.Context, _ string, _, _ time.Time) ([]repository.ActivityKindTotal, error) {
	return f.summary, nil
}

func (f *fakeActivitiesRepo) openCount(deviceID string) int {
	n := 0
	for _, iv := range f.intervals {
		if iv.DeviceID == deviceID && iv.EndTime == nil {
			n++
		}
	}
	return n
}

type fakeFallsRepo struct {
	falls         []*domain.FallEvent
	notifications []*domain.NotificationLog
	insertErr     error
	notifErr      error
}

func (f *fakeFallsRepo) InsertFallEvent(_ context.Context, fall *domain.FallEvent) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	fall.ID = fmt.Sprintf("fall-%d", len(f.falls)+1)
	f.falls = append(f.falls, fall)
	return fall.ID, nil
}

func (f *fakeFallsRepo) ListFallsBetween(_ context.Context, deviceID string, from, to time.Time) ([]domain.FallEvent, error) {
	var out []domain.FallEvent
	for _, fall := range f.falls {
		if fall.DeviceID != deviceID {
			continue
		}
		if fall.DetectedAt.Before(from) || !fall.DetectedAt.Before(to) {
			continue
		}
		out = append(out, *fall)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.After(out[j].DetectedAt) })
	return out, nil
}

func (f *fakeFallsRepo) InsertNotificationLog(_ context.Context, log *domain.NotificationLog) error {
	if f.notifErr != nil {
		return f.notifErr
	}
	f.notifications = append(f.notifications, log)
	return nil
}

type systemLogRecord struct {
	deviceID string
	level    domain.LogLevel
	message  string
}

type fakeSystemLogsRepo struct {
	entries   []systemLogRecord
	insertErr error
}

func (f *fakeSystemLogsRepo) Insert(_ context.Context, deviceID string, level domain.LogLevel, message string, _ time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, systemLogRecord{deviceID: deviceID, level: level, message: message})
	return nil
}

func (f *fakeSystemLogsRepo) byLevel(level domain.LogLevel) []systemLogRecord {
	var out []systemLogRecord
	for _, e := range f.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

type fakePublisher struct {
	events []*domain.TelemetryEvent
}

func (f *fakePublisher) Publish(_ context.Context, ev *domain.TelemetryEvent) {
	f.events = append(f.events, ev)
}
