package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router standard library http.ServeMux with the CORS handling the
// dashboard frontend expects.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// RegisterTelemetryRoutes wires the device-facing ingestion endpoint.
func (r *Router) RegisterTelemetryRoutes(h *TelemetryHandler) {
	r.Handle("/api/v1/telemetry", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			writeFail(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST.")
			return
		}
		h.Receive(w, req)
	})
}

// RegisterSnapshotRoutes wires the dashboard-facing query endpoint.
func (r *Router) RegisterSnapshotRoutes(h *SnapshotHandler) {
	r.Handle("/api/v1/snapshot", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			writeFail(w, http.StatusMethodNotAllowed, "Method not allowed. Use GET.")
			return
		}
		h.Latest(w, req)
	})
}

// RegisterHealthRoutes wires the liveness endpoint.
func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("/healthz", h.Check)
}
