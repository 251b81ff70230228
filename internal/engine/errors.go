package engine

import "errors"

var (
	// ErrInvalidPrice is returned when an amend would set a resting order's
	// price to NaN or an infinity.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidQuantity is returned when an amend would drive a resting
	// order's quantity to zero or below.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
