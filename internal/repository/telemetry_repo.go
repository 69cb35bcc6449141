package repository

import (
	"context"

	"safewatch-data/internal/domain"
)

// TelemetryRepository append-only raw telemetry rows (IMU samples, GPS
// fixes, obstacle detections) plus the latest-row reads used by the
// snapshot assembler.
type TelemetryRepository interface {
	// InsertSensorReading stores one IMU sample and returns the row id.
	InsertSensorReading(ctx context.Context, reading *domain.SensorReading) (string, error)

	// InsertGPSFix stores one position report and returns the row id.
	InsertGPSFix(ctx context.Context, fix *domain.GPSFix) (string, error)

	// InsertObstacleDetection stores one detection and returns the row id.
	InsertObstacleDetection(ctx context.Context, det *domain.ObstacleDetection) (string, error)

	// LatestGPSFix returns nil, nil when the device never reported a fix.
	LatestGPSFix(ctx context.Context, deviceID string) (*domain.GPSFix, error)

	// LatestSensorReading returns nil, nil when no sample exists.
	LatestSensorReading(ctx context.Context, deviceID string) (*domain.SensorReading, error)
}
