package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flightdata-service/internal/domain/entity"
	"flightdata-service/internal/domain/repository"
	"flightdata-service/internal/infrastructure/persistence"
	gormRepo "flightdata-service/internal/interface/repository"
	"flightdata-service/pkg/logger"
	"flightdata-service/pkg/metrics"
)

// ErrorPolicy decides what a lookup does with a query execution error
type ErrorPolicy int

const (
	// PolicyFailSoft logs the error and returns an empty result
	PolicyFailSoft ErrorPolicy = iota
	// PolicyStrict returns the error to the caller
	PolicyStrict
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyFailSoft:
		return "fail-soft"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// Option configures a FlightLookupService
type Option func(*FlightLookupService)

// WithErrorPolicy overrides the default fail-soft policy
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(s *FlightLookupService) {
		s.policy = p
	}
}

// WithMetrics records per-lookup counters and durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *FlightLookupService) {
		s.metrics = m
	}
}

// FlightLookupService runs the four flight lookups against a database handle
// it owns exclusively.
type FlightLookupService struct {
	repo    repository.FlightLookupRepository
	closer  func() error
	logger  logger.Logger
	metrics *metrics.Metrics
	policy  ErrorPolicy

	closeOnce sync.Once
	closeErr  error
}

// NewFlightLookupService creates a service over repo. closer releases the
// underlying handle and may be nil when the caller keeps ownership.
func NewFlightLookupService(
	repo repository.FlightLookupRepository,
	closer func() error,
	logger logger.Logger,
	opts ...Option,
) *FlightLookupService {
	s := &FlightLookupService{
		repo:   repo,
		closer: closer,
		logger: logger,
		policy: PolicyFailSoft,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the database handle for uri and a service that owns it
func Open(uri string, log logger.Logger, dbOpts persistence.Options, opts ...Option) (*FlightLookupService, error) {
	db, err := persistence.NewGormDB(uri, dbOpts)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database pool: %w", err)
	}

	repo := gormRepo.NewGormFlightLookupRepository(db)
	return NewFlightLookupService(repo, sqlDB.Close, log, opts...), nil
}

// Policy reports the active error policy
func (s *FlightLookupService) Policy() ErrorPolicy {
	return s.policy
}

// LookupByID returns at most one row for the flight with id
func (s *FlightLookupService) LookupByID(ctx context.Context, id int64) ([]entity.Row, error) {
	return s.run(gormRepo.OpLookupByID, func() ([]entity.Row, error) {
		return s.repo.FindByID(ctx, id)
	}, "id", id)
}

// LookupByDate returns the flights stored for day/month/year
func (s *FlightLookupService) LookupByDate(ctx context.Context, day, month, year int) ([]entity.Row, error) {
	return s.run(gormRepo.OpLookupByDate, func() ([]entity.Row, error) {
		return s.repo.FindByDate(ctx, day, month, year)
	}, "day", day, "month", month, "year", year)
}

// LookupDelayedByAirline returns the airline's flights that left late
func (s *FlightLookupService) LookupDelayedByAirline(ctx context.Context, airline string) ([]entity.Row, error) {
	return s.run(gormRepo.OpLookupDelayedByAirline, func() ([]entity.Row, error) {
		return s.repo.FindDelayedByAirline(ctx, airline)
	}, "airline", airline)
}

// LookupDelayedByAirport returns the flights departing airport
func (s *FlightLookupService) LookupDelayedByAirport(ctx context.Context, airport string) ([]entity.Row, error) {
	return s.run(gormRepo.OpLookupDelayedByAirport, func() ([]entity.Row, error) {
		return s.repo.FindDelayedByAirport(ctx, airport)
	}, "airport", airport)
}

// Ping checks the store regardless of policy
func (s *FlightLookupService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Close releases the database handle. Only the first call does any work.
func (s *FlightLookupService) Close() error {
	s.closeOnce.Do(func() {
		if s.closer == nil {
			return
		}
		s.closeErr = s.closer()
		if s.closeErr == nil {
			s.logger.Info("Database connection closed")
		}
	})
	return s.closeErr
}

func (s *FlightLookupService) run(op string, lookup func() ([]entity.Row, error), params ...interface{}) ([]entity.Row, error) {
	start := time.Now()
	rows, err := lookup()
	s.observe(op, start, len(rows), err)

	if err == nil {
		return rows, nil
	}

	if s.policy == PolicyStrict {
		return nil, err
	}

	fields := append([]interface{}{"operation", op, "error", err}, params...)
	s.logger.Error("Database error", fields...)
	return []entity.Row{}, nil
}

func (s *FlightLookupService) observe(op string, start time.Time, rows int, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.QueriesTotal.WithLabelValues(op).Inc()
	s.metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.QueryErrors.WithLabelValues(op).Inc()
		return
	}
	s.metrics.RowsReturned.WithLabelValues(op).Add(float64(rows))
}
