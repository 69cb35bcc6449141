package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"safewatch-data/internal/domain"
)

// PostgresDevicesRepository devices table access.
type PostgresDevicesRepository struct {
	db *sql.DB
}

// NewPostgresDevicesRepository creates the devices repository.
func NewPostgresDevicesRepository(db *sql.DB) *PostgresDevicesRepository {
	return &PostgresDevicesRepository{db: db}
}

var _ DevicesRepository = (*PostgresDevicesRepository)(nil)

// GetDevice fetches one device profile by its identifier.
func (r *PostgresDevicesRepository) GetDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	query := `
		SELECT device_id, name, age, emergency_contact, medical_condition,
		       battery_level, is_active, updated_at
		FROM devices
		WHERE device_id = $1
	`

	var d domain.Device
	var contact, condition sql.NullString
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&d.DeviceID,
		&d.Name,
		&d.Age,
		&contact,
		&condition,
		&d.BatteryLevel,
		&d.IsActive,
		&d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBErr("get device", err)
	}
	d.EmergencyContact = contact.String
	d.MedicalCondition = condition.String
	return &d, nil
}

// UpdateBatteryLevel updates the stored battery level. A device_id with no
// matching row updates nothing and succeeds, matching ingestion semantics.
func (r *PostgresDevicesRepository) UpdateBatteryLevel(ctx context.Context, deviceID string, level int, now time.Time) error {
	query := `
		UPDATE devices
		SET battery_level = $2, updated_at = $3
		WHERE device_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, deviceID, level, now)
	return wrapDBErr("update battery level", err)
}
