package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"safewatch-data/internal/domain"
)

// PostgresActivitiesRepository activity_intervals table access.
type PostgresActivitiesRepository struct {
	db *sql.DB
}

// NewPostgresActivitiesRepository creates the activities repository.
func NewPostgresActivitiesRepository(db *sql.DB) *PostgresActivitiesRepository {
	return &PostgresActivitiesRepository{db: db}
}

var _ ActivitiesRepository = (*PostgresActivitiesRepository)(nil)

// GetOpenInterval returns the open interval for a device, if any.
func (r *PostgresActivitiesRepository) GetOpenInterval(ctx context.Context, deviceID string) (*domain.ActivityInterval, error) {
	query := `
		SELECT id, device_id, activity_type, confidence, start_time, end_time, duration_seconds
		FROM activity_intervals
		WHERE device_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var iv domain.ActivityInterval
	var endTime sql.NullTime
	var duration sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&iv.ID,
		&iv.DeviceID,
		&iv.ActivityType,
		&iv.Confidence,
		&iv.StartTime,
		&endTime,
		&duration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBErr("get open activity interval", err)
	}
	if endTime.Valid {
		iv.EndTime = &endTime.Time
	}
	if duration.Valid {
		iv.DurationSeconds = &duration.Int64
	}
	return &iv, nil
}

// OpenInterval inserts a new interval with a null end_time.
func (r *PostgresActivitiesRepository) OpenInterval(ctx context.Context, deviceID string, kind domain.ActivityKind, confidence float64, start time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO activity_intervals (id, device_id, activity_type, confidence, start_time)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, id, deviceID, kind, confidence, start)
	if err != nil {
		return "", wrapDBErr("open activity interval", err)
	}
	return id, nil
}

// CloseInterval closes an open interval. Duration is computed in SQL from
// the stored start_time so device clock skew cannot produce negative or
// inflated durations; the end_time IS NULL guard makes the close a
// check-and-set against concurrent submissions for the same device.
func (r *PostgresActivitiesRepository) CloseInterval(ctx context.Context, intervalID string, end time.Time) error {
	query := `
		UPDATE activity_intervals
		SET end_time = $2,
		    duration_seconds = GREATEST(0, CAST(EXTRACT(EPOCH FROM ($2 - start_time)) AS BIGINT))
		WHERE id = $1 AND end_time IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, intervalID, end)
	if err != nil {
		return wrapDBErr("close activity interval", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDBErr("close activity interval", err)
	}
	if affected == 0 {
		return wrapDBErr("close activity interval", fmt.Errorf("interval %s not open", intervalID))
	}
	return nil
}

// SummaryForRange aggregates duration_seconds per kind for intervals
// started in [from, to). Open intervals contribute a zero duration.
func (r *PostgresActivitiesRepository) SummaryForRange(ctx context.Context, deviceID string, from, to time.Time) ([]ActivityKindTotal, error) {
	query := `
		SELECT activity_type, COALESCE(SUM(duration_seconds), 0), COUNT(*)
		FROM activity_intervals
		WHERE device_id = $1 AND start_time >= $2 AND start_time < $3
		GROUP BY activity_type
	`

	rows, err := r.db.QueryContext(ctx, query, deviceID, from, to)
	if err != nil {
		return nil, wrapDBErr("activity summary", err)
	}
	defer rows.Close()

	var totals []ActivityKindTotal
	for rows.Next() {
		var t ActivityKindTotal
		if err := rows.Scan(&t.ActivityType, &t.TotalSeconds, &t.Count); err != nil {
			return nil, wrapDBErr("activity summary", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("activity summary", err)
	}
	return totals, nil
}
