package repository

import (
	"context"
	"time"

	"safewatch-data/internal/domain"
)

// FallsRepository fall event and notification log persistence.
type FallsRepository interface {
	// InsertFallEvent stores one detected fall and returns the row id.
	InsertFallEvent(ctx context.Context, fall *domain.FallEvent) (string, error)

	// ListFallsBetween returns falls detected in [from, to), newest first.
	ListFallsBetween(ctx context.Context, deviceID string, from, to time.Time) ([]domain.FallEvent, error)

	// InsertNotificationLog records the notification intent for a fall.
	InsertNotificationLog(ctx context.Context, log *domain.NotificationLog) error
}
