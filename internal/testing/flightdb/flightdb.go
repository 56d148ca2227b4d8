package flightdb

import (
	"embed"
	"fmt"
	"path/filepath"
	"testing"

	"flightdata-service/internal/domain/entity"
	"flightdata-service/internal/infrastructure/persistence"

	"github.com/jszwec/csvutil"
	"gorm.io/gorm"
)

//go:embed fixtures/*.csv
var fixtures embed.FS

var schema = []string{`
CREATE TABLE airlines (
	ID INTEGER PRIMARY KEY,
	AIRLINE TEXT NOT NULL
)`, `
CREATE TABLE flights (
	ID INTEGER PRIMARY KEY,
	YEAR INTEGER NOT NULL,
	MONTH INTEGER NOT NULL,
	DAY INTEGER NOT NULL,
	AIRLINE INTEGER NOT NULL REFERENCES airlines(ID),
	FLIGHT_NUMBER INTEGER,
	ORIGIN_AIRPORT TEXT NOT NULL,
	DESTINATION_AIRPORT TEXT NOT NULL,
	DEPARTURE_DELAY INTEGER
)`}

// Flight is one fixture row of the flights table
type Flight struct {
	ID                 int64  `csv:"ID"`
	Year               int    `csv:"YEAR"`
	Month              int    `csv:"MONTH"`
	Day                int    `csv:"DAY"`
	AirlineID          int64  `csv:"AIRLINE"`
	FlightNumber       int    `csv:"FLIGHT_NUMBER"`
	OriginAirport      string `csv:"ORIGIN_AIRPORT"`
	DestinationAirport string `csv:"DESTINATION_AIRPORT"`
	DepartureDelay     *int64 `csv:"DEPARTURE_DELAY"`
}

// FlightDB is a seeded SQLite database
type FlightDB struct {
	DB       *gorm.DB
	URI      string
	Path     string
	Airlines []entity.Airline
	Flights  []Flight
}

// New creates and seeds a database that lives until the test ends
func New(t testing.TB) *FlightDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flights.sqlite3")
	uri := "sqlite:///" + path

	db, err := persistence.NewGormDB(uri, persistence.Options{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get test database pool: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	fdb := &FlightDB{DB: db, URI: uri, Path: path}
	if err := fdb.seed(); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return fdb
}

// AirlineName returns the fixture name for an airline id
func (f *FlightDB) AirlineName(id int64) string {
	for _, a := range f.Airlines {
		if a.ID == id {
			return a.Name
		}
	}
	return ""
}

// Where returns the fixture flights matching keep, in fixture order
func (f *FlightDB) Where(keep func(Flight) bool) []Flight {
	var out []Flight
	for _, fl := range f.Flights {
		if keep(fl) {
			out = append(out, fl)
		}
	}
	return out
}

func (f *FlightDB) seed() error {
	for _, stmt := range schema {
		if err := f.DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err := load("fixtures/airlines.csv", &f.Airlines); err != nil {
		return err
	}
	if err := load("fixtures/flights.csv", &f.Flights); err != nil {
		return err
	}

	for _, a := range f.Airlines {
		err := f.DB.Exec("INSERT INTO airlines (ID, AIRLINE) VALUES (?, ?)", a.ID, a.Name).Error
		if err != nil {
			return fmt.Errorf("insert airline %d: %w", a.ID, err)
		}
	}
	for _, fl := range f.Flights {
		err := f.DB.Exec(`INSERT INTO flights (ID, YEAR, MONTH, DAY, AIRLINE, FLIGHT_NUMBER,
			ORIGIN_AIRPORT, DESTINATION_AIRPORT, DEPARTURE_DELAY) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fl.ID, fl.Year, fl.Month, fl.Day, fl.AirlineID, fl.FlightNumber,
			fl.OriginAirport, fl.DestinationAirport, fl.DepartureDelay).Error
		if err != nil {
			return fmt.Errorf("insert flight %d: %w", fl.ID, err)
		}
	}
	return nil
}

func load(name string, v interface{}) error {
	data, err := fixtures.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := csvutil.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
