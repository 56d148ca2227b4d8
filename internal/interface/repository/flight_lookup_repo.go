package repository

import (
	"context"
	"fmt"

	"flightdata-service/internal/domain/entity"
	"flightdata-service/internal/domain/repository"

	"gorm.io/gorm"
)

// Operation names, also used as log fields and metric labels
const (
	OpLookupByID             = "lookup_by_id"
	OpLookupByDate           = "lookup_by_date"
	OpLookupDelayedByAirline = "lookup_delayed_by_airline"
	OpLookupDelayedByAirport = "lookup_delayed_by_airport"
)

const queryFlightByID = `SELECT flights.ID AS ID,
	flights.ID AS FLIGHT_ID,
	flights.YEAR AS YEAR,
	flights.MONTH AS MONTH,
	flights.DAY AS DAY,
	flights.ORIGIN_AIRPORT AS ORIGIN_AIRPORT,
	flights.DESTINATION_AIRPORT AS DESTINATION_AIRPORT,
	flights.DEPARTURE_DELAY AS DELAY,
	airlines.AIRLINE AS AIRLINE
	FROM flights
	JOIN airlines ON flights.AIRLINE = airlines.ID
	WHERE flights.ID = @id`

const queryFlightsByDate = `SELECT flights.ID AS ID,
	flights.YEAR AS YEAR,
	flights.MONTH AS MONTH,
	flights.DAY AS DAY,
	flights.DESTINATION_AIRPORT AS DESTINATION_AIRPORT,
	flights.ORIGIN_AIRPORT AS ORIGIN_AIRPORT,
	flights.DEPARTURE_DELAY AS DELAY,
	airlines.AIRLINE AS AIRLINE
	FROM flights
	JOIN airlines ON airlines.ID = flights.AIRLINE
	WHERE flights.DAY = @day
	AND flights.MONTH = @month
	AND flights.YEAR = @year`

const queryDelayedFlightsByAirline = `SELECT flights.ID AS ID,
	flights.YEAR AS YEAR,
	flights.MONTH AS MONTH,
	flights.DAY AS DAY,
	flights.ORIGIN_AIRPORT AS ORIGIN_AIRPORT,
	flights.DESTINATION_AIRPORT AS DESTINATION_AIRPORT,
	flights.DEPARTURE_DELAY AS DELAY,
	airlines.AIRLINE AS AIRLINE
	FROM flights
	JOIN airlines ON airlines.ID = flights.AIRLINE
	WHERE airlines.AIRLINE = @airline AND flights.DEPARTURE_DELAY > 0`

const queryDelayedFlightsByAirport = `SELECT flights.ID AS ID,
	flights.ORIGIN_AIRPORT AS ORIGIN_AIRPORT,
	flights.DESTINATION_AIRPORT AS DESTINATION_AIRPORT,
	airlines.AIRLINE AS AIRLINE,
	flights.DEPARTURE_DELAY AS DELAY
	FROM flights
	JOIN airlines ON airlines.ID = flights.AIRLINE
	WHERE flights.ORIGIN_AIRPORT = @airport`

// GormFlightLookupRepository implements the FlightLookupRepository interface
type GormFlightLookupRepository struct {
	db *gorm.DB
}

// NewGormFlightLookupRepository creates a new GORM flight lookup repository
func NewGormFlightLookupRepository(db *gorm.DB) *GormFlightLookupRepository {
	return &GormFlightLookupRepository{
		db: db,
	}
}

var _ repository.FlightLookupRepository = (*GormFlightLookupRepository)(nil)

// FindByID returns the flight with id joined with its airline name
func (r *GormFlightLookupRepository) FindByID(ctx context.Context, id int64) ([]entity.Row, error) {
	return r.execute(ctx, OpLookupByID, queryFlightByID, map[string]interface{}{
		"id": id,
	})
}

// FindByDate returns the flights stored for exactly day/month/year
func (r *GormFlightLookupRepository) FindByDate(ctx context.Context, day, month, year int) ([]entity.Row, error) {
	return r.execute(ctx, OpLookupByDate, queryFlightsByDate, map[string]interface{}{
		"day":   day,
		"month": month,
		"year":  year,
	})
}

// FindDelayedByAirline returns the late departures of the named airline
func (r *GormFlightLookupRepository) FindDelayedByAirline(ctx context.Context, airline string) ([]entity.Row, error) {
	return r.execute(ctx, OpLookupDelayedByAirline, queryDelayedFlightsByAirline, map[string]interface{}{
		"airline": airline,
	})
}

// FindDelayedByAirport returns every departure from airport, delayed or not
func (r *GormFlightLookupRepository) FindDelayedByAirport(ctx context.Context, airport string) ([]entity.Row, error) {
	return r.execute(ctx, OpLookupDelayedByAirport, queryDelayedFlightsByAirport, map[string]interface{}{
		"airport": airport,
	})
}

// Ping checks that the store can be reached
func (r *GormFlightLookupRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return repository.NewQueryError("ping", err)
	}
	return repository.NewQueryError("ping", sqlDB.PingContext(ctx))
}

// execute binds params into query and runs it on a dedicated connection that
// is returned to the handle before execute returns.
func (r *GormFlightLookupRepository) execute(ctx context.Context, op, query string, params map[string]interface{}) ([]entity.Row, error) {
	var result []map[string]interface{}

	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Raw(query, params).Scan(&result).Error
	})
	if err != nil {
		return nil, repository.NewQueryError(op, fmt.Errorf("execute: %w", err))
	}

	rows := make([]entity.Row, 0, len(result))
	for _, m := range result {
		rows = append(rows, entity.Row(m))
	}
	return rows, nil
}
