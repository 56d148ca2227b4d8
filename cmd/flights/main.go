// Command flights runs a single flight lookup and prints the rows.
//
//	flights [-db URI] [-format csv|json] [-strict] id 1
//	flights date 1 1 2015
//	flights airline "Delta Air Lines Inc."
//	flights airport JFK
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"flightdata-service/internal/domain/entity"
	"flightdata-service/internal/infrastructure/config"
	"flightdata-service/internal/infrastructure/persistence"
	"flightdata-service/internal/usecase"
	"flightdata-service/pkg/logger"

	"github.com/jszwec/csvutil"
)

var errUsage = errors.New("usage: flights [-db URI] [-format csv|json] [-strict] id <id> | date <day> <month> <year> | airline <name> | airport <code>")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		logger.NewLogger().Fatal("Failed to create logger", "error", err)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("flights", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dbURI := fs.String("db", cfg.DatabaseURI, "database connection URI")
	format := fs.String("format", "csv", "output format: csv or json")
	strict := fs.Bool("strict", !cfg.FailSoft, "report database errors instead of printing no rows")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *format != "csv" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}

	policy := usecase.PolicyFailSoft
	if *strict {
		policy = usecase.PolicyStrict
	}

	svc, err := usecase.Open(*dbURI, log, persistence.Options{LogSQL: cfg.LogSQL}, usecase.WithErrorPolicy(policy))
	if err != nil {
		return err
	}
	defer svc.Close()

	rows, err := lookup(ctx, svc, fs.Args())
	if err != nil {
		return err
	}

	records, err := entity.RecordsFromRows(rows)
	if err != nil {
		return err
	}

	if *format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return writeCSV(out, records)
}

func lookup(ctx context.Context, svc *usecase.FlightLookupService, args []string) ([]entity.Row, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	cmd, params := args[0], args[1:]
	switch {
	case cmd == "id" && len(params) == 1:
		id, err := strconv.ParseInt(params[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id must be an integer: %q", params[0])
		}
		return svc.LookupByID(ctx, id)
	case cmd == "date" && len(params) == 3:
		var date [3]int
		for i, p := range params {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("date parts must be integers: %q", p)
			}
			date[i] = n
		}
		return svc.LookupByDate(ctx, date[0], date[1], date[2])
	case cmd == "airline" && len(params) == 1:
		return svc.LookupDelayedByAirline(ctx, params[0])
	case cmd == "airport" && len(params) == 1:
		return svc.LookupDelayedByAirport(ctx, params[0])
	default:
		return nil, errUsage
	}
}

func writeCSV(out io.Writer, records []entity.FlightRecord) error {
	w := csv.NewWriter(out)
	enc := csvutil.NewEncoder(w)

	var err error
	if len(records) == 0 {
		err = enc.EncodeHeader(entity.FlightRecord{})
	} else {
		err = enc.Encode(records)
	}
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	w.Flush()
	return w.Error()
}
