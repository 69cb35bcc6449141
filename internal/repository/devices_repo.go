package repository

import (
	"context"
	"time"

	"safewatch-data/internal/domain"
)

// DevicesRepository device profile reads and battery/state updates.
type DevicesRepository interface {
	// GetDevice returns nil, nil when the device is not registered.
	GetDevice(ctx context.Context, deviceID string) (*domain.Device, error)

	// UpdateBatteryLevel sets the reported battery level and bumps
	// updated_at. Updating an unregistered device is not an error.
	UpdateBatteryLevel(ctx context.Context, deviceID string, level int, now time.Time) error
}
