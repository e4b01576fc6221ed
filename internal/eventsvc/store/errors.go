package store

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrNoCapacity is returned when a seat reservation finds the event full.
	ErrNoCapacity = errors.New("no capacity left")
)
