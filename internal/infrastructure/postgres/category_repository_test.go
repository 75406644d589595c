package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

func TestCategoryRepo_Create_Duplicada(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := &entity.Category{Name: "Jabones", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	mock.ExpectExec("INSERT INTO categories").
		WithArgs(c.Name, c.Description, c.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = NewCategoryRepository(mock).Create(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_Get_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT nombre, descripcion, created_at FROM categories").
		WithArgs("Cremas").
		WillReturnError(pgx.ErrNoRows)

	c, err := NewCategoryRepository(mock).Get(context.Background(), "Cremas")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCategoryRepo_Rename(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WITH c AS \(\s+INSERT INTO categories`).
		WithArgs("Jabon", "Jabones", at).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))

	n, err := NewCategoryRepository(mock).Rename(context.Background(), "Jabon", "Jabones", at)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_Delete_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM categories").WithArgs("Cremas").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewCategoryRepository(mock).Delete(context.Background(), "Cremas")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
