package stablemat

import (
	"errors"
)

var (
	// ErrNotInitialized is returned when a multiply or readback is invoked
	// before Initialize.
	ErrNotInitialized = errors.New("stablemat: instance not initialized")

	// ErrAlreadyInitialized is returned when Initialize is called twice.
	// Dimensions are fixed for the lifetime of an instance.
	ErrAlreadyInitialized = errors.New("stablemat: instance already initialized")
)
