package custom_err

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of them so callers can branch with errors.Is.
var (
	ErrFetch      = errors.New("fetch error")
	ErrParse      = errors.New("parse error")
	ErrValidation = errors.New("validation error")
)

var (
	// Validation errors
	ErrSameCurrency        = fmt.Errorf("%w: base and target currency must differ", ErrValidation)
	ErrInvalidCurrency     = fmt.Errorf("%w: invalid currency code", ErrValidation)
	ErrUnsupportedCurrency = fmt.Errorf("%w: unsupported currency", ErrValidation)
	ErrUnknownMessageType  = fmt.Errorf("%w: unknown message type", ErrValidation)

	// Favorites errors
	ErrDuplicateFavorite = fmt.Errorf("%w: pair is already in favorites", ErrValidation)
	ErrFavoritesFull     = fmt.Errorf("%w: favorites are limited to 5 pairs", ErrValidation)
	ErrFavoriteIndex     = fmt.Errorf("%w: favorite index out of range", ErrValidation)

	// Scrape errors
	ErrRateNotFound   = fmt.Errorf("%w: could not find rate element in quote page", ErrParse)
	ErrRateNotANumber = fmt.Errorf("%w: failed to parse rate from quote page", ErrParse)
)
