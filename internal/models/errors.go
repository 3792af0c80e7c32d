package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
	ErrInvalidID      = errors.New("invalid ID format")
	ErrInvalidPick    = errors.New("invalid pick")
	ErrInvalidContext = errors.New("invalid game context")
)
