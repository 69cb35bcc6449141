package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/service"
)

const maxBodyBytes = 1 << 20

// TelemetryHandler device-facing ingestion endpoint.
type TelemetryHandler struct {
	ingest *service.IngestService
	logger *zap.Logger
}

func NewTelemetryHandler(ingest *service.IngestService, logger *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{ingest: ingest, logger: logger}
}

// Receive decodes one telemetry envelope and dispatches it. Client faults
// map to 400, storage faults to 500; neither leaks internals in the
// envelope message.
func (h *TelemetryHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var ev domain.TelemetryEvent
	if err := readBodyJSON(r, maxBodyBytes, &ev); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	res, err := h.ingest.Process(r.Context(), &ev)
	if err != nil {
		if domain.IsValidation(err) {
			writeFail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("telemetry ingestion failed",
			zap.String("device_id", ev.DeviceID),
			zap.String("data_type", ev.DataType),
			zap.Error(err),
		)
		writeFail(w, http.StatusInternalServerError, "Error processing data")
		return
	}

	writeSuccess(w, res.Message, res.Data)
}
