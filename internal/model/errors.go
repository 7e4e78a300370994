package model

import "errors"

var (
	// ErrEmptyName is returned when a required label or name is blank
	ErrEmptyName = errors.New("name or label must not be empty")

	// ErrNegativeValue is returned when a numeric field violates its lower bound
	ErrNegativeValue = errors.New("numeric fields must not be negative")

	// ErrInvalidRange is returned when a price range has min_price > max_price
	ErrInvalidRange = errors.New("min_price must not exceed max_price")
)
