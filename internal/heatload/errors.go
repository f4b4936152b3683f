package heatload

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidRidgeAxis      = errors.New("invalid ridge axis")
	ErrInvalidFloors         = errors.New("floors must be a whole number >= 1")
	ErrWindowAreaExceedsWall = errors.New("window area exceeds gross wall area")
)
