package postgres

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/infrastructure/postgres/migrations"
)

func TestRunMigrations_AplicaSoloPendientes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{
		"0001_init.up.sql":    {Data: []byte("CREATE TABLE a (id int)")},
		"0002_extra.up.sql":   {Data: []byte("CREATE TABLE b (id int)")},
		"0002_extra.down.sql": {Data: []byte("DROP TABLE b")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("0001_init.up.sql").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("0002_extra.up.sql").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0002_extra.up.sql").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, RunMigrations(context.Background(), mock, fsys, zerolog.Nop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationsEmbebidas(t *testing.T) {
	content, err := migrations.FS.ReadFile("0001_init.up.sql")
	require.NoError(t, err)
	sql := string(content)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS movements")
	assert.Contains(t, sql, "uq_movements_idempotency_key")
	assert.Contains(t, sql, "CHECK (stock_actual >= 0)")
}
