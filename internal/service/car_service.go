package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"autosphere-api/internal/client"
	"autosphere-api/internal/model"
)

const (
	carDetailsPrompt = "Provide detailed information about the car: %s. Include market price, license requirements (standard global classes), and 3 common problems that can be fixed at home."
	featuredPrompt   = "List 6 diverse and popular cars currently in the global market. Include a mix of SUVs, Sedans, and Electric vehicles."

	recordTimeout = 5 * time.Second
)

// LookupRecorder receives one audit entry per lookup
type LookupRecorder interface {
	Record(ctx context.Context, entry *model.LookupLog) error
}

// CarService turns free-text intent into validated car records by asking the
// oracle. It holds no state between calls.
type CarService struct {
	oracle   client.Oracle
	recorder LookupRecorder
	logger   *zap.Logger
}

func NewCarService(oracle client.Oracle, logger *zap.Logger) *CarService {
	return &CarService{
		oracle: oracle,
		logger: logger,
	}
}

// SetRecorder enables the lookup audit log
func (s *CarService) SetRecorder(r LookupRecorder) {
	s.recorder = r
}

// OracleName identifies the backend in use
func (s *CarService) OracleName() string {
	return s.oracle.Name()
}

// FetchCarDetails looks up exactly one car for query. Any failure is a
// *LookupFailure and no partial record is returned.
func (s *CarService) FetchCarDetails(ctx context.Context, query string) (*model.Car, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &LookupFailure{Kind: model.LookupKindSearch, Err: fmt.Errorf("empty query")}
	}

	start := time.Now()
	car, err := s.fetchCar(ctx, query)
	s.record(ctx, model.LookupKindSearch, query, start, boolToCount(car != nil), err)

	if err != nil {
		s.logger.Warn("car lookup failed", zap.String("query", query), zap.Error(err))
		return nil, &LookupFailure{Kind: model.LookupKindSearch, Query: query, Err: err}
	}

	s.logger.Info("car lookup completed",
		zap.String("query", query),
		zap.String("id", car.ID),
		zap.Duration("latency", time.Since(start)),
	)
	return car, nil
}

func (s *CarService) fetchCar(ctx context.Context, query string) (*model.Car, error) {
	text, err := s.oracle.Generate(ctx, client.Request{
		Prompt: fmt.Sprintf(carDetailsPrompt, query),
		Shape:  client.ShapeCar,
	})
	if err != nil {
		return nil, err
	}

	car, err := decodeCar(text)
	if err != nil {
		return nil, err
	}
	car.Derive()
	return car, nil
}

// FetchFeaturedCars asks for the featured set. Order is the oracle's.
func (s *CarService) FetchFeaturedCars(ctx context.Context) ([]model.Car, error) {
	start := time.Now()
	cars, err := s.fetchFeatured(ctx)
	s.record(ctx, model.LookupKindFeatured, "", start, len(cars), err)

	if err != nil {
		s.logger.Warn("featured lookup failed", zap.Error(err))
		return nil, &LookupFailure{Kind: model.LookupKindFeatured, Err: err}
	}

	s.logger.Info("featured lookup completed",
		zap.Int("count", len(cars)),
		zap.Duration("latency", time.Since(start)),
	)
	return cars, nil
}

func (s *CarService) fetchFeatured(ctx context.Context) ([]model.Car, error) {
	text, err := s.oracle.Generate(ctx, client.Request{
		Prompt: featuredPrompt,
		Shape:  client.ShapeCarList,
	})
	if err != nil {
		return nil, err
	}

	cars, err := decodeCarList(text)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		cars[i].Derive()
	}
	return cars, nil
}

// record writes the audit entry. A failing recorder never fails the lookup.
func (s *CarService) record(ctx context.Context, kind, query string, start time.Time, count int, lookupErr error) {
	if s.recorder == nil {
		return
	}

	entry := &model.LookupLog{
		Kind:        kind,
		Query:       query,
		Success:     lookupErr == nil,
		ResultCount: count,
		LatencyMS:   time.Since(start).Milliseconds(),
	}
	if lookupErr != nil {
		entry.ErrorMessage = lookupErr.Error()
		entry.ErrorType = model.ClassifyError(entry.ErrorMessage)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record lookup", zap.String("kind", kind), zap.Error(err))
	}
}

func boolToCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
