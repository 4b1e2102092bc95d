package converter

import (
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
)

// Favorites упорядоченный список избранных пар: порядок добавления = порядок показа.
type Favorites struct {
	pairs []models.FavoritePair
}

// NewFavorites принимает сохраненный список как есть.
func NewFavorites(pairs []models.FavoritePair) *Favorites {
	return &Favorites{pairs: append([]models.FavoritePair(nil), pairs...)}
}

func (f *Favorites) Len() int {
	return len(f.pairs)
}

func (f *Favorites) List() []models.FavoritePair {
	return append([]models.FavoritePair{}, f.pairs...)
}

func (f *Favorites) Contains(pair models.FavoritePair) bool {
	for _, p := range f.pairs {
		if p == pair {
			return true
		}
	}
	return false
}

// Add проверяет дубликат раньше лимита.
func (f *Favorites) Add(pair models.FavoritePair) error {
	if f.Contains(pair) {
		return custom_err.ErrDuplicateFavorite
	}
	if len(f.pairs) >= models.MaxFavorites {
		return custom_err.ErrFavoritesFull
	}
	f.pairs = append(f.pairs, pair)
	return nil
}

func (f *Favorites) Remove(index int) error {
	if index < 0 || index >= len(f.pairs) {
		return custom_err.ErrFavoriteIndex
	}
	f.pairs = append(f.pairs[:index], f.pairs[index+1:]...)
	return nil
}

func (f *Favorites) At(index int) (models.FavoritePair, error) {
	if index < 0 || index >= len(f.pairs) {
		return models.FavoritePair{}, custom_err.ErrFavoriteIndex
	}
	return f.pairs[index], nil
}
