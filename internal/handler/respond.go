package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"autosphere-api/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func healthResponse(dbStatus, oracle string) model.HealthResponse {
	response := model.HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Oracle:    oracle,
		Timestamp: time.Now(),
	}
	if dbStatus == "disconnected" {
		response.Status = "degraded"
	}
	return response
}
