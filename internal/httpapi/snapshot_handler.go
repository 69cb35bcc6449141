package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"safewatch-data/internal/service"
)

// SnapshotHandler dashboard-facing latest-state endpoint.
type SnapshotHandler struct {
	snapshots       *service.SnapshotService
	defaultDeviceID string
	logger          *zap.Logger
}

func NewSnapshotHandler(snapshots *service.SnapshotService, defaultDeviceID string, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots:       snapshots,
		defaultDeviceID: defaultDeviceID,
		logger:          logger,
	}
}

// Latest assembles the snapshot for the requested device. The default
// device identifier is applied here, at the transport boundary only; the
// assembler always receives an explicit id.
func (h *SnapshotHandler) Latest(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		deviceID = h.defaultDeviceID
	}

	snap, err := h.snapshots.Snapshot(r.Context(), deviceID)
	if err != nil {
		h.logger.Error("snapshot assembly failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		writeFail(w, http.StatusInternalServerError, "Error retrieving data")
		return
	}

	writeSuccess(w, "Data retrieved successfully", snap)
}
