package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	oracle string
}

// NewHealthHandler builds the health check. db is nil when the lookup audit
// log is disabled.
func NewHealthHandler(db Pinger, oracle string) *HealthHandler {
	return &HealthHandler{db: db, oracle: oracle}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "disconnected"
		}
	}

	response := healthResponse(dbStatus, h.oracle)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
