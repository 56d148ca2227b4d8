package repository

import (
	"errors"
	"fmt"
)

// ErrQueryExecution is the only failure kind the lookup layer reports:
// connectivity loss, malformed SQL and driver errors all map to it.
var ErrQueryExecution = errors.New("query execution failed")

// QueryError records which lookup failed and why
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrQueryExecution, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrQueryExecution) hold for every QueryError
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryExecution
}

// NewQueryError wraps err for op, passing nil through
func NewQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}
