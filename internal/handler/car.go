package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"autosphere-api/internal/model"
	"autosphere-api/internal/service"
)

// CarLookup is implemented by *service.CarService
type CarLookup interface {
	FetchCarDetails(ctx context.Context, query string) (*model.Car, error)
	FetchFeaturedCars(ctx context.Context) ([]model.Car, error)
}

type CarHandler struct {
	cars   CarLookup
	logger *zap.Logger
}

func NewCarHandler(cars CarLookup, logger *zap.Logger) *CarHandler {
	return &CarHandler{cars: cars, logger: logger}
}

// Search looks up one car from a JSON body {"query": "..."}
func (h *CarHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}
	h.search(w, r, req.Query)
}

// SearchQuery is the GET form: /cars/search?q=...
func (h *CarHandler) SearchQuery(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, r.URL.Query().Get("q"))
}

func (h *CarHandler) search(w http.ResponseWriter, r *http.Request, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing_query", "Query must not be empty")
		return
	}

	car, err := h.cars.FetchCarDetails(r.Context(), query)
	if err != nil {
		h.lookupFailed(w, err, model.LookupFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, model.SearchResponse{Car: *car})
}

// Featured returns the featured set in oracle order
func (h *CarHandler) Featured(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.FetchFeaturedCars(r.Context())
	if err != nil {
		h.lookupFailed(w, err, "Failed to load featured cars")
		return
	}

	if cars == nil {
		cars = []model.Car{}
	}
	writeJSON(w, http.StatusOK, model.FeaturedResponse{Cars: cars})
}

func (h *CarHandler) lookupFailed(w http.ResponseWriter, err error, message string) {
	if !errors.Is(err, service.ErrLookupFailure) {
		h.logger.Error("unexpected lookup error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Unexpected error")
		return
	}
	writeError(w, http.StatusBadGateway, "lookup_failed", message)
}
