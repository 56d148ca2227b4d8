package repository

import (
	"context"

	"flightdata-service/internal/domain/entity"
)

// FlightLookupRepository defines the read-only lookups over flight records.
// Every failure is returned as a *QueryError.
type FlightLookupRepository interface {
	FindByID(ctx context.Context, id int64) ([]entity.Row, error)
	FindByDate(ctx context.Context, day, month, year int) ([]entity.Row, error)
	FindDelayedByAirline(ctx context.Context, airline string) ([]entity.Row, error)
	FindDelayedByAirport(ctx context.Context, airport string) ([]entity.Row, error)
	Ping(ctx context.Context) error
}
