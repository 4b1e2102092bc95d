package models

// FavoritesKey имя записи с избранными парами в локальном хранилище
const FavoritesKey = "favorites"

// MaxFavorites максимальное число избранных пар
const MaxFavorites = 5

// FavoritePair сохраненная пользователем пара валют
type FavoritePair struct {
	FromCurrency Currency `json:"fromCurrency"`
	ToCurrency   Currency `json:"toCurrency"`
}

func (f FavoritePair) String() string {
	return string(f.FromCurrency) + "/" + string(f.ToCurrency)
}
