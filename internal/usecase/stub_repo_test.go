package usecase

import (
	"context"
	"fmt"

	"flightdata-service/internal/domain/entity"
)

type stubRepo struct {
	calls []string
	err   error
}

func (r *stubRepo) FindByID(_ context.Context, id int64) ([]entity.Row, error) {
	r.calls = append(r.calls, fmt.Sprintf("id=%d", id))
	return []entity.Row{}, r.err
}

func (r *stubRepo) FindByDate(_ context.Context, day, month, year int) ([]entity.Row, error) {
	r.calls = append(r.calls, fmt.Sprintf("date=%d/%d/%d", day, month, year))
	return []entity.Row{}, r.err
}

func (r *stubRepo) FindDelayedByAirline(_ context.Context, airline string) ([]entity.Row, error) {
	r.calls = append(r.calls, "airline="+airline)
	return []entity.Row{}, r.err
}

func (r *stubRepo) FindDelayedByAirport(_ context.Context, airport string) ([]entity.Row, error) {
	r.calls = append(r.calls, "airport="+airport)
	return []entity.Row{}, r.err
}

func (r *stubRepo) Ping(context.Context) error {
	return r.err
}
