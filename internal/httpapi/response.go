package httpapi

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response envelope shared by every endpoint.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

const timestampLayout = "2006-01-02 15:04:05"

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().Format(timestampLayout),
		Data:      data,
	})
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, true, message, data)
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, false, message, nil)
}
