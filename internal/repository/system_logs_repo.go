package repository

import (
	"context"
	"time"

	"safewatch-data/internal/domain"
)

// SystemLogsRepository append-only diagnostic trail.
type SystemLogsRepository interface {
	Insert(ctx context.Context, deviceID string, level domain.LogLevel, message string, now time.Time) error
}
