package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lm-inventario/internal/domain"
)

func TestClassifyTxError(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "55P03"} {
		err := classifyTxError(fmt.Errorf("select: %w", &pgconn.PgError{Code: code}))
		assert.ErrorIs(t, err, domain.ErrConflict, code)
	}

	plain := errors.New("syntax error")
	assert.Same(t, plain, classifyTxError(plain))
	assert.NoError(t, classifyTxError(nil))
	assert.NotErrorIs(t, classifyTxError(&pgconn.PgError{Code: "23505"}), domain.ErrConflict)
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())

	w.add("a = $%d", 1)
	w.add("(b ILIKE $%[1]d OR c ILIKE $%[1]d)", "%x%")
	assert.Equal(t, " WHERE a = $1 AND (b ILIKE $2 OR c ILIKE $2)", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(10, 5))
	assert.Equal(t, []any{1, "%x%", 10, 5}, w.args)
}

func TestIsConnectionError(t *testing.T) {
	assert.True(t, isConnectionError(errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")))
	assert.False(t, isConnectionError(errors.New(`relation "products" does not exist`)))
	assert.False(t, isConnectionError(nil))
}
