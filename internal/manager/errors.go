package manager

import "errors"

var (
	// ErrNotFound is returned when the addressed symbol or order does not
	// exist. Never emitted on the update channel.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for a NaN price, a non-positive quantity,
	// or a duplicate NewOrderbook(symbol).
	ErrInvalidInput = errors.New("invalid input")
)
