package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"safewatch-data/internal/domain"
)

// PostgresFallsRepository fall_events and notification_logs table access.
type PostgresFallsRepository struct {
	db *sql.DB
}

// NewPostgresFallsRepository creates the falls repository.
func NewPostgresFallsRepository(db *sql.DB) *PostgresFallsRepository {
	return &PostgresFallsRepository{db: db}
}

var _ FallsRepository = (*PostgresFallsRepository)(nil)

// InsertFallEvent appends one fall event.
func (r *PostgresFallsRepository) InsertFallEvent(ctx context.Context, fall *domain.FallEvent) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO fall_events (id, device_id, latitude, longitude, confidence, severity, status, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		fall.DeviceID,
		fall.Latitude,
		fall.Longitude,
		fall.Confidence,
		fall.Severity,
		fall.Status,
		fall.DetectedAt,
	)
	if err != nil {
		return "", wrapDBErr("insert fall event", err)
	}
	return id, nil
}

// ListFallsBetween returns falls detected in [from, to), newest first.
func (r *PostgresFallsRepository) ListFallsBetween(ctx context.Context, deviceID string, from, to time.Time) ([]domain.FallEvent, error) {
	query := `
		SELECT id, device_id, latitude, longitude, confidence, severity, status, detected_at
		FROM fall_events
		WHERE device_id = $1 AND detected_at >= $2 AND detected_at < $3
		ORDER BY detected_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, deviceID, from, to)
	if err != nil {
		return nil, wrapDBErr("list fall events", err)
	}
	defer rows.Close()

	var falls []domain.FallEvent
	for rows.Next() {
		var fall domain.FallEvent
		var lat, lon sql.NullFloat64
		if err := rows.Scan(
			&fall.ID,
			&fall.DeviceID,
			&lat,
			&lon,
			&fall.Confidence,
			&fall.Severity,
			&fall.Status,
			&fall.DetectedAt,
		); err != nil {
			return nil, wrapDBErr("list fall events", err)
		}
		if lat.Valid {
			fall.Latitude = &lat.Float64
		}
		if lon.Valid {
			fall.Longitude = &lon.Float64
		}
		falls = append(falls, fall)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("list fall events", err)
	}
	return falls, nil
}

// InsertNotificationLog appends one notification record.
func (r *PostgresFallsRepository) InsertNotificationLog(ctx context.Context, log *domain.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (id, fall_event_id, channel, recipient, status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(),
		log.FallEventID,
		log.Channel,
		log.Recipient,
		log.Status,
		log.Timestamp,
	)
	return wrapDBErr("insert notification log", err)
}
