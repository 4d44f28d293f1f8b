package tx

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

func TestMapConflict(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name         string
		err          error
		wantConflict bool
	}

	plain := errors.New("constraint violated")

	tests := []testCase{
		{
			name:         "serialization failure becomes retryable conflict",
			err:          &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			wantConflict: true,
		},
		{
			name:         "deadlock becomes retryable conflict",
			err:          &pgconn.PgError{Code: "40P01", Message: "deadlock detected"},
			wantConflict: true,
		},
		{
			name: "wrapped pg error is still detected",
			err: errors.Join(
				errors.New("tx commit"),
				&pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			),
			wantConflict: true,
		},
		{
			name: "other pg errors pass through",
			err:  &pgconn.PgError{Code: "23505", Message: "duplicate key"},
		},
		{
			name: "non-pg errors pass through",
			err:  plain,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapConflict(tt.err)
			if tt.wantConflict {
				assert.ErrorIs(t, got, model.ErrStorageConflict)
				return
			}
			assert.Equal(t, tt.err, got)
		})
	}
}
