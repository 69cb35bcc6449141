package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"safewatch-data/internal/domain"
)

// PostgresSystemLogsRepository system_logs table access.
type PostgresSystemLogsRepository struct {
	db *sql.DB
}

// NewPostgresSystemLogsRepository creates the system logs repository.
func NewPostgresSystemLogsRepository(db *sql.DB) *PostgresSystemLogsRepository {
	return &PostgresSystemLogsRepository{db: db}
}

var _ SystemLogsRepository = (*PostgresSystemLogsRepository)(nil)

// Insert appends one diagnostic entry.
func (r *PostgresSystemLogsRepository) Insert(ctx context.Context, deviceID string, level domain.LogLevel, message string, now time.Time) error {
	query := `
		INSERT INTO system_logs (id, device_id, level, message, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), deviceID, level, message, now)
	return wrapDBErr("insert system log", err)
}
