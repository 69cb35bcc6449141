package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"safewatch-data/internal/domain"
)

// PostgresTelemetryRepository raw telemetry table access.
type PostgresTelemetryRepository struct {
	db *sql.DB
}

// NewPostgresTelemetryRepository creates the telemetry repository.
func NewPostgresTelemetryRepository(db *sql.DB) *PostgresTelemetryRepository {
	return &PostgresTelemetryRepository{db: db}
}

var _ TelemetryRepository = (*PostgresTelemetryRepository)(nil)

// InsertSensorReading appends one IMU sample.
func (r *PostgresTelemetryRepository) InsertSensorReading(ctx context.Context, reading *domain.SensorReading) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO sensor_readings (id, device_id, sensor_id, acc_x, acc_y, acc_z, gyro_x, gyro_y, gyro_z, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		reading.DeviceID,
		reading.SensorID,
		reading.AccX,
		reading.AccY,
		reading.AccZ,
		reading.GyroX,
		reading.GyroY,
		reading.GyroZ,
		reading.Timestamp,
	)
	if err != nil {
		return "", wrapDBErr("insert sensor reading", err)
	}
	return id, nil
}

// InsertGPSFix appends one position report.
func (r *PostgresTelemetryRepository) InsertGPSFix(ctx context.Context, fix *domain.GPSFix) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO gps_fixes (id, device_id, latitude, longitude, accuracy, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		fix.DeviceID,
		fix.Latitude,
		fix.Longitude,
		fix.Accuracy,
		fix.Timestamp,
	)
	if err != nil {
		return "", wrapDBErr("insert gps fix", err)
	}
	return id, nil
}

// InsertObstacleDetection appends one object detection.
func (r *PostgresTelemetryRepository) InsertObstacleDetection(ctx context.Context, det *domain.ObstacleDetection) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO obstacle_detections (id, device_id, object_class, confidence, bbox_x1, bbox_y1, bbox_x2, bbox_y2, distance, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		det.DeviceID,
		det.ObjectClass,
		det.Confidence,
		det.BBoxX1,
		det.BBoxY1,
		det.BBoxX2,
		det.BBoxY2,
		det.Distance,
		det.Timestamp,
	)
	if err != nil {
		return "", wrapDBErr("insert obstacle detection", err)
	}
	return id, nil
}

// LatestGPSFix returns the most recent position report for a device.
func (r *PostgresTelemetryRepository) LatestGPSFix(ctx context.Context, deviceID string) (*domain.GPSFix, error) {
	query := `
		SELECT id, device_id, latitude, longitude, accuracy, timestamp
		FROM gps_fixes
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var fix domain.GPSFix
	var accuracy sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&fix.ID,
		&fix.DeviceID,
		&fix.Latitude,
		&fix.Longitude,
		&accuracy,
		&fix.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBErr("get latest gps fix", err)
	}
	if accuracy.Valid {
		fix.Accuracy = &accuracy.Float64
	}
	return &fix, nil
}

// LatestSensorReading returns the most recent IMU sample for a device.
func (r *PostgresTelemetryRepository) LatestSensorReading(ctx context.Context, deviceID string) (*domain.SensorReading, error) {
	query := `
		SELECT id, device_id, sensor_id, acc_x, acc_y, acc_z, gyro_x, gyro_y, gyro_z, timestamp
		FROM sensor_readings
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var reading domain.SensorReading
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&reading.ID,
		&reading.DeviceID,
		&reading.SensorID,
		&reading.AccX,
		&reading.AccY,
		&reading.AccZ,
		&reading.GyroX,
		&reading.GyroY,
		&reading.GyroZ,
		&reading.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBErr("get latest sensor reading", err)
	}
	return &reading, nil
}
