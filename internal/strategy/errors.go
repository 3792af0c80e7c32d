package strategy

import "errors"

// Configuration errors. These indicate a programming or config mistake and are never
// produced by missing data.
var (
	ErrUnknownVersion = errors.New("unknown strategy version")
	ErrUnknownShape   = errors.New("unknown slot shape")
	ErrEmptySlots     = errors.New("strategy slot list is empty")
	ErrInvalidConfig  = errors.New("invalid strategy configuration")
)
