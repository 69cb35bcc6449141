package repository

import "safewatch-data/internal/domain"

// wrapDBErr converts any database/sql failure into the domain persistence
// error surfaced to callers. nil passes through.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewPersistenceError(op, err)
}
