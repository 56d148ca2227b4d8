package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryError_MatchesSentinelAndCause(t *testing.T) {
	err := NewQueryError("lookup_by_id", sql.ErrConnDone)

	assert.ErrorIs(t, err, ErrQueryExecution)
	assert.ErrorIs(t, err, sql.ErrConnDone)

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "lookup_by_id", qe.Op)
	assert.Contains(t, err.Error(), "lookup_by_id")
	assert.Contains(t, err.Error(), sql.ErrConnDone.Error())
}

func TestNewQueryError_NilPassesThrough(t *testing.T) {
	assert.NoError(t, NewQueryError("lookup_by_date", nil))
}
