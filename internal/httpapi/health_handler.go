package httpapi

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler liveness endpoint: reports whether storage is reachable.
type HealthHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.Warn("health check: database unreachable", zap.Error(err))
			writeFail(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
	}
	writeSuccess(w, "ok", nil)
}
