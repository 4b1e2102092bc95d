package memory

import (
	"context"
	"testing"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetMissing(t *testing.T) {
	s := NewStorage()
	var favorites []models.FavoritePair

	found, err := s.Get(context.Background(), models.FavoritesKey, &favorites)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, favorites)
}

func TestStorage_SetThenGet(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	want := []models.FavoritePair{
		{FromCurrency: models.CurrencyUSD, ToCurrency: models.CurrencyKRW},
		{FromCurrency: models.CurrencyJPY, ToCurrency: models.CurrencyKRW},
	}

	require.NoError(t, s.Set(ctx, models.FavoritesKey, want))

	var got []models.FavoritePair
	found, err := s.Get(ctx, models.FavoritesKey, &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestStorage_SetCopiesValue(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	value := []models.FavoritePair{{FromCurrency: models.CurrencyUSD, ToCurrency: models.CurrencyKRW}}
	require.NoError(t, s.Set(ctx, models.FavoritesKey, value))

	value[0].FromCurrency = models.CurrencyEUR

	var got []models.FavoritePair
	_, err := s.Get(ctx, models.FavoritesKey, &got)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyUSD, got[0].FromCurrency)
}
