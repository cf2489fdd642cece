package handler

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"autosphere-api/internal/model"
	"autosphere-api/internal/service"
)

// LookupStats is implemented by *repository.LookupLogRepo
type LookupStats interface {
	Stats(ctx context.Context) (map[string]int, error)
}

type LookupHandler struct {
	repo   LookupStats
	logger *zap.Logger
}

func NewLookupHandler(repo LookupStats, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{repo: repo, logger: logger}
}

// Stats counts failed lookups per error type
func (h *LookupHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to read lookup stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database_error", "Failed to read lookup stats")
		return
	}

	total := 0
	for _, n := range stats {
		total += n
	}
	writeJSON(w, http.StatusOK, model.LookupStatsResponse{
		Failures: stats,
		Total:    total,
	})
}

// LiveStats is implemented by *service.LookupTracker
type LiveStats interface {
	Snapshot(topN int) service.TrackerSnapshot
}

type LiveHandler struct {
	tracker LiveStats
}

func NewLiveHandler(tracker LiveStats) *LiveHandler {
	return &LiveHandler{tracker: tracker}
}

// Live reports in-process counters since startup. ?top=N limits the query
// ranking (default 10).
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	top := 10
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "top must be a non-negative integer")
			return
		}
		top = n
	}
	writeJSON(w, http.StatusOK, h.tracker.Snapshot(top))
}
