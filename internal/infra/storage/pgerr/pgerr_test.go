package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	pqErr := &pq.Error{Code: "23P01"}
	pgxErr := &pgconn.PgError{Code: "40001"}

	assert.Equal(t, ExclusionViolation, Code(pqErr))
	assert.Equal(t, SerializationFailure, Code(fmt.Errorf("commit: %w", pgxErr)))
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.Equal(t, "", Code(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: UniqueViolation}))
	assert.True(t, IsConflict(&pgconn.PgError{Code: ExclusionViolation}))
	assert.True(t, IsConflict(fmt.Errorf("wrapped: %w", &pq.Error{Code: SerializationFailure})))
	assert.False(t, IsConflict(&pq.Error{Code: ForeignKeyViolation}))
	assert.False(t, IsConflict(errors.New("timeout")))
}
