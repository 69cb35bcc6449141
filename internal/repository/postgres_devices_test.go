package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDevicesDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresDevicesRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresDevicesRepository(db)
	return db, mock, repo
}

func TestGetDevice_Found(t *testing.T) {
	db, mock, repo := setupMockDevicesDB(t)
	defer db.Close()

	updatedAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"device_id", "name", "age", "emergency_contact", "medical_condition",
		"battery_level", "is_active", "updated_at",
	}).AddRow("SAFE-001", "Sutomo", 74, "+62811111111", "hypertension", 85, true, updatedAt)

	mock.ExpectQuery(`SELECT`).
		WithArgs("SAFE-001").
		WillReturnRows(rows)

	d, err := repo.GetDevice(context.Background(), "SAFE-001")

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Sutomo", d.Name)
	assert.Equal(t, "+62811111111", d.EmergencyContact)
	assert.Equal(t, 85, d.BatteryLevel)
	assert.True(t, d.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDevice_Unregistered(t *testing.T) {
	db, mock, repo := setupMockDevicesDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("SAFE-404").
		WillReturnError(sql.ErrNoRows)

	d, err := repo.GetDevice(context.Background(), "SAFE-404")

	require.NoError(t, err)
	assert.Nil(t, d)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDevice_NullContact(t *testing.T) {
	db, mock, repo := setupMockDevicesDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"device_id", "name", "age", "emergency_contact", "medical_condition",
		"battery_level", "is_active", "updated_at",
	}).AddRow("SAFE-002", "Aminah", 80, nil, nil, 50, true, time.Now())

	mock.ExpectQuery(`SELECT`).
		WithArgs("SAFE-002").
		WillReturnRows(rows)

	d, err := repo.GetDevice(context.Background(), "SAFE-002")

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Empty(t, d.EmergencyContact)
	assert.Empty(t, d.MedicalCondition)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBatteryLevel_NoMatchingDeviceSucceeds(t *testing.T) {
	db, mock, repo := setupMockDevicesDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE devices`).
		WithArgs("SAFE-404", 55, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBatteryLevel(context.Background(), "SAFE-404", 55, now)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
