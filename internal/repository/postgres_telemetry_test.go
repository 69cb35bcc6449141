package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safewatch-data/internal/domain"
)

func setupMockTelemetryDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresTelemetryRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresTelemetryRepository(db)
	return db, mock, repo
}

func TestInsertSensorReading(t *testing.T) {
	db, mock, repo := setupMockTelemetryDB(t)
	defer db.Close()

	ts := time.Now()
	mock.ExpectExec(`INSERT INTO sensor_readings`).
		WithArgs(sqlmock.AnyArg(), "SAFE-001", 1, 0.1, -0.2, 9.8, 0.01, 0.02, 0.03, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.InsertSensorReading(context.Background(), &domain.SensorReading{
		DeviceID:  "SAFE-001",
		SensorID:  1,
		AccX:      0.1,
		AccY:      -0.2,
		AccZ:      9.8,
		GyroX:     0.01,
		GyroY:     0.02,
		GyroZ:     0.03,
		Timestamp: ts,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertGPSFix_NullAccuracy(t *testing.T) {
	db, mock, repo := setupMockTelemetryDB(t)
	defer db.Close()

	ts := time.Now()
	mock.ExpectExec(`INSERT INTO gps_fixes`).
		WithArgs(sqlmock.AnyArg(), "SAFE-001", -7.250445, 112.768845, nil, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.InsertGPSFix(context.Background(), &domain.GPSFix{
		DeviceID:  "SAFE-001",
		Latitude:  -7.250445,
		Longitude: 112.768845,
		Timestamp: ts,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestGPSFix_NoneRecorded(t *testing.T) {
	db, mock, repo := setupMockTelemetryDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("SAFE-001").
		WillReturnError(sql.ErrNoRows)

	fix, err := repo.LatestGPSFix(context.Background(), "SAFE-001")

	require.NoError(t, err)
	assert.Nil(t, fix)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestSensorReading_Found(t *testing.T) {
	db, mock, repo := setupMockTelemetryDB(t)
	defer db.Close()

	ts := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "device_id", "sensor_id", "acc_x", "acc_y", "acc_z", "gyro_x", "gyro_y", "gyro_z", "timestamp",
	}).AddRow("r1", "SAFE-001", 1, 0.1, 0.2, 9.7, 0.0, 0.0, 0.0, ts)

	mock.ExpectQuery(`SELECT`).
		WithArgs("SAFE-001").
		WillReturnRows(rows)

	reading, err := repo.LatestSensorReading(context.Background(), "SAFE-001")

	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, 9.7, reading.AccZ)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertObstacleDetection(t *testing.T) {
	db, mock, repo := setupMockTelemetryDB(t)
	defer db.Close()

	ts := time.Now()
	dist := 0.5
	mock.ExpectExec(`INSERT INTO obstacle_detections`).
		WithArgs(sqlmock.AnyArg(), "SAFE-001", "chair", 0.88, 10, 20, 110, 220, &dist, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.InsertObstacleDetection(context.Background(), &domain.ObstacleDetection{
		DeviceID:    "SAFE-001",
		ObjectClass: "chair",
		Confidence:  0.88,
		BBoxX1:      10,
		BBoxY1:      20,
		BBoxX2:      110,
		BBoxY2:      220,
		Distance:    &dist,
		Timestamp:   ts,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}
