package postgres

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

const cartKey = "FoodSprintCart"

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestStorage_Get_Success(t *testing.T) {
	mock := newMock(t)
	value := `[{"id":"a1","name":"Pizza","price":9.99,"img":"pizza.png","quantity":1}]`

	mock.ExpectQuery(regexp.QuoteMeta(selectValue)).
		WithArgs(cartKey).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(value))

	got, err := NewStorage(mock).Get(context.Background(), cartKey)
	require.NoError(t, err)
	assert.Equal(t, value, string(got))
}

func TestStorage_Get_NotFound(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectValue)).
		WithArgs(cartKey).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewStorage(mock).Get(context.Background(), cartKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_Get_QueryError(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectValue)).
		WithArgs(cartKey).
		WillReturnError(errors.New("connection reset"))

	_, err := NewStorage(mock).Get(context.Background(), cartKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "select storage key")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestStorage_Set_Upserts(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertValue)).
		WithArgs(cartKey, "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewStorage(mock).Set(context.Background(), cartKey, []byte("[]")))
}

func TestStorage_Set_Error(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertValue)).
		WithArgs(cartKey, "[]").
		WillReturnError(errors.New("disk full"))

	err := NewStorage(mock).Set(context.Background(), cartKey, []byte("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}

func TestStorage_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err = NewStorage(mock).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "001_create_cart_storage.up.sql")
	assert.Contains(t, names, "001_create_cart_storage.down.sql")
}
