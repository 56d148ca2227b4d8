// Package flightdb builds throwaway SQLite flight databases for tests.
//
// Each call to New creates a fresh database file under t.TempDir(), creates
// the flights and airlines tables and loads the CSV fixtures embedded in this
// package. The fixture set is small enough to reason about by hand:
//
//	airlines: 1 AA, 2 Delta Air Lines Inc., 3 United Air Lines Inc.
//	flights on 2015-01-01: 1, 2, 3, 7
//	flights from JFK: 1, 3, 6 (6 has no recorded delay)
package flightdb
