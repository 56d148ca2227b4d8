// internal/domain/entity/flight_record.go
package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Column aliases produced by the lookup templates
const (
	ColumnID                 = "ID"
	ColumnFlightID           = "FLIGHT_ID"
	ColumnYear               = "YEAR"
	ColumnMonth              = "MONTH"
	ColumnDay                = "DAY"
	ColumnOriginAirport      = "ORIGIN_AIRPORT"
	ColumnDestinationAirport = "DESTINATION_AIRPORT"
	ColumnDelay              = "DELAY"
	ColumnAirline            = "AIRLINE"
)

// Row is a single result record keyed by column name. Keys keep whatever
// case the driver reports, so lookups go through the accessors.
type Row map[string]interface{}

// Get returns the value stored under column, matching case-insensitively
func (r Row) Get(column string) (interface{}, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}

// String returns column as text; missing and NULL values are ""
func (r Row) String(column string) string {
	v, ok := r.Get(column)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// Int64 returns column as an integer; missing and NULL values are 0
func (r Row) Int64(column string) int64 {
	n, _ := r.NullableInt64(column)
	if n == nil {
		return 0
	}
	return *n
}

// NullableInt64 returns nil for missing and NULL values
func (r Row) NullableInt64(column string) (*int64, error) {
	v, ok := r.Get(column)
	if !ok || v == nil {
		return nil, nil
	}

	var n int64
	switch val := v.(type) {
	case int64:
		n = val
	case int32:
		n = int64(val)
	case int:
		n = int64(val)
	case int16:
		n = int64(val)
	case int8:
		n = int64(val)
	case uint64:
		n = int64(val)
	case uint32:
		n = int64(val)
	case float64:
		n = int64(val)
	case float32:
		n = int64(val)
	case []byte:
		return parseInt(column, string(val))
	case string:
		return parseInt(column, val)
	default:
		return nil, fmt.Errorf("column %s: unsupported type %T", column, v)
	}
	return &n, nil
}

func parseInt(column, s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	// DECIMAL columns come back as text from some drivers
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %q is not a number", column, s)
	}
	n := int64(f)
	return &n, nil
}

// FlightRecord is the typed view of a lookup row. Fields a lookup does not
// select stay at their zero value.
type FlightRecord struct {
	ID                 int64  `csv:"id" json:"id"`
	Year               int    `csv:"year,omitempty" json:"year,omitempty"`
	Month              int    `csv:"month,omitempty" json:"month,omitempty"`
	Day                int    `csv:"day,omitempty" json:"day,omitempty"`
	OriginAirport      string `csv:"origin_airport" json:"origin_airport"`
	DestinationAirport string `csv:"destination_airport" json:"destination_airport"`
	// DepartureDelay is in minutes, positive when late; nil when not recorded
	DepartureDelay *int64 `csv:"departure_delay" json:"departure_delay"`
	Airline        string `csv:"airline" json:"airline"`
}

// IsDelayed reports whether the flight left late
func (f FlightRecord) IsDelayed() bool {
	return f.DepartureDelay != nil && *f.DepartureDelay > 0
}

// RecordFromRow maps a lookup row onto a FlightRecord
func RecordFromRow(row Row) (FlightRecord, error) {
	delay, err := row.NullableInt64(ColumnDelay)
	if err != nil {
		return FlightRecord{}, err
	}

	id := row.Int64(ColumnID)
	if id == 0 {
		id = row.Int64(ColumnFlightID)
	}

	return FlightRecord{
		ID:                 id,
		Year:               int(row.Int64(ColumnYear)),
		Month:              int(row.Int64(ColumnMonth)),
		Day:                int(row.Int64(ColumnDay)),
		OriginAirport:      row.String(ColumnOriginAirport),
		DestinationAirport: row.String(ColumnDestinationAirport),
		DepartureDelay:     delay,
		Airline:            row.String(ColumnAirline),
	}, nil
}

// RecordsFromRows maps every row, stopping at the first malformed one
func RecordsFromRows(rows []Row) ([]FlightRecord, error) {
	records := make([]FlightRecord, 0, len(rows))
	for i, row := range rows {
		record, err := RecordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
