package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate natural key")
	ErrValidation   = errors.New("validation error")
)

// DuplicateKeyError reports that more than one persisted row matched a
// natural key that is expected to be unique. It signals a store-integrity
// problem and is always surfaced, never resolved silently.
type DuplicateKeyError struct {
	Entity string
	Key    string
	Count  int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q: %d rows match a unique natural key", e.Entity, e.Key, e.Count)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// NewDuplicateKeyError creates a DuplicateKeyError for an entity and key.
func NewDuplicateKeyError(entity, key string, count int) *DuplicateKeyError {
	return &DuplicateKeyError{Entity: entity, Key: key, Count: count}
}
