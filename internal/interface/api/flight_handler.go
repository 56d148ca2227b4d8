package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"flightdata-service/internal/domain/entity"
	"flightdata-service/internal/domain/repository"
	"flightdata-service/pkg/logger"
)

// FlightLookup is the lookup surface the handler serves
type FlightLookup interface {
	LookupByID(ctx context.Context, id int64) ([]entity.Row, error)
	LookupByDate(ctx context.Context, day, month, year int) ([]entity.Row, error)
	LookupDelayedByAirline(ctx context.Context, airline string) ([]entity.Row, error)
	LookupDelayedByAirport(ctx context.Context, airport string) ([]entity.Row, error)
	Ping(ctx context.Context) error
}

// FlightsResponse is the JSON body of every successful lookup
type FlightsResponse struct {
	Count   int                   `json:"count"`
	Flights []entity.FlightRecord `json:"flights"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// FlightHandler exposes the lookups over HTTP
type FlightHandler struct {
	lookup FlightLookup
	logger logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(lookup FlightLookup, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		lookup: lookup,
		logger: logger,
	}
}

// Register adds the flight routes to mux
func (h *FlightHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /flights/{id}", h.getByID)
	mux.HandleFunc("GET /flights", h.getByDate)
	mux.HandleFunc("GET /delays/airlines/{airline}", h.getDelayedByAirline)
	mux.HandleFunc("GET /delays/airports/{airport}", h.getDelayedByAirport)
	mux.HandleFunc("GET /health", h.health)
}

func (h *FlightHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	rows, err := h.lookup.LookupByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	if len(rows) == 0 {
		h.writeError(w, http.StatusNotFound, "flight not found")
		return
	}
	h.writeRows(w, rows)
}

func (h *FlightHandler) getByDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var date [3]int
	for i, key := range []string{"day", "month", "year"} {
		n, err := strconv.Atoi(query.Get(key))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, key+" must be an integer")
			return
		}
		date[i] = n
	}

	rows, err := h.lookup.LookupByDate(r.Context(), date[0], date[1], date[2])
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	h.writeRows(w, rows)
}

func (h *FlightHandler) getDelayedByAirline(w http.ResponseWriter, r *http.Request) {
	rows, err := h.lookup.LookupDelayedByAirline(r.Context(), r.PathValue("airline"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	h.writeRows(w, rows)
}

func (h *FlightHandler) getDelayedByAirport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.lookup.LookupDelayedByAirport(r.Context(), r.PathValue("airport"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	h.writeRows(w, rows)
}

func (h *FlightHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.lookup.Ping(r.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "database connection error")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

func (h *FlightHandler) writeRows(w http.ResponseWriter, rows []entity.Row) {
	records, err := entity.RecordsFromRows(rows)
	if err != nil {
		h.logger.Error("Failed to map rows", "error", err)
		h.writeError(w, http.StatusInternalServerError, "unexpected row format")
		return
	}
	h.writeJSON(w, http.StatusOK, FlightsResponse{Count: len(records), Flights: records})
}

func (h *FlightHandler) writeLookupError(w http.ResponseWriter, err error) {
	h.logger.Error("Lookup failed", "error", err)
	if errors.Is(err, repository.ErrQueryExecution) {
		h.writeError(w, http.StatusServiceUnavailable, "flight store unavailable")
		return
	}
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *FlightHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *FlightHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}
