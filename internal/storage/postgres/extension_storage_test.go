package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"currency-converter/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectRecord = regexp.QuoteMeta("SELECT value")
	upsertRecord = regexp.QuoteMeta("INSERT INTO extension_storage")
)

func TestPgExtensionStorage_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)

	mock.ExpectQuery(selectRecord).
		WithArgs(models.FavoritesKey).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).
			AddRow([]byte(`[{"fromCurrency":"USD","toCurrency":"KRW"}]`)))

	var favorites []models.FavoritePair
	found, err := s.Get(context.Background(), models.FavoritesKey, &favorites)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []models.FavoritePair{{FromCurrency: "USD", ToCurrency: "KRW"}}, favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgExtensionStorage_Get_NoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)

	mock.ExpectQuery(selectRecord).
		WithArgs(models.FavoritesKey).
		WillReturnError(pgx.ErrNoRows)

	var favorites []models.FavoritePair
	found, err := s.Get(context.Background(), models.FavoritesKey, &favorites)

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgExtensionStorage_Get_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)

	mock.ExpectQuery(selectRecord).
		WithArgs(models.FavoritesKey).
		WillReturnError(errors.New("connection reset"))

	var favorites []models.FavoritePair
	found, err := s.Get(context.Background(), models.FavoritesKey, &favorites)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgExtensionStorage_Get_CorruptValue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)

	mock.ExpectQuery(selectRecord).
		WithArgs(models.FavoritesKey).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"not":"a list"}`)))

	var favorites []models.FavoritePair
	found, err := s.Get(context.Background(), models.FavoritesKey, &favorites)

	assert.Error(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgExtensionStorage_Set(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)
	favorites := []models.FavoritePair{
		{FromCurrency: models.CurrencyUSD, ToCurrency: models.CurrencyKRW},
		{FromCurrency: models.CurrencyEUR, ToCurrency: models.CurrencyKRW},
	}

	mock.ExpectExec(upsertRecord).
		WithArgs(models.FavoritesKey, []byte(`[{"fromCurrency":"USD","toCurrency":"KRW"},{"fromCurrency":"EUR","toCurrency":"KRW"}]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = s.Set(context.Background(), models.FavoritesKey, favorites)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgExtensionStorage_Set_ExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewExtensionStorage(mock)

	mock.ExpectExec(upsertRecord).
		WithArgs(models.FavoritesKey, pgxmock.AnyArg()).
		WillReturnError(errors.New("read-only transaction"))

	err = s.Set(context.Background(), models.FavoritesKey, []models.FavoritePair{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read-only transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}
