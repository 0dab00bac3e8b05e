// Package stable provides a growable, byte-addressable linear store for
// matrix operands. The store is grown in fixed 64 KiB pages and accessed
// with word-granularity reads and writes; all multi-byte values are encoded
// little-endian. Two backends exist: an in-memory store and a file-backed
// memory-mapped store whose contents survive reopening.
package stable

import (
	"errors"
	"fmt"
)

// PageSize is the allocation granularity of a store in bytes.
const PageSize = 64 * 1024

var (
	// ErrCapacity is returned when a growth request exceeds the store's
	// page ceiling. Growth is all-or-nothing; a failed Grow leaves the
	// store unchanged.
	ErrCapacity = errors.New("stable: capacity exceeded")
	// ErrOutOfBounds is returned when a read or write touches bytes
	// outside the currently allocated pages.
	ErrOutOfBounds = errors.New("stable: access out of bounds")
	// ErrClosed is returned when accessing a closed store.
	ErrClosed = errors.New("stable: store is closed")
)

// Store is a growable linear byte address space.
//
// Reads and writes are exact-length: they either transfer len(p) bytes or
// fail with ErrOutOfBounds without partial transfer.
type Store interface {
	// Grow extends the store by the given number of pages and returns the
	// page count before growing. Newly granted pages are zeroed.
	Grow(pages uint64) (uint64, error)

	// Pages returns the number of currently allocated pages.
	Pages() uint64

	// Size returns the current store size in bytes (Pages() * PageSize).
	Size() uint64

	// Read copies len(p) bytes starting at off into p.
	Read(off uint64, p []byte) error

	// Write copies p into the store starting at off.
	Write(off uint64, p []byte) error

	// WriteInt32 writes v at off as a 4-byte little-endian word.
	WriteInt32(off uint64, v int32) error
}

// Lane4Reader is an optional Store capability: a single batched read that
// returns four consecutive 32-bit words in one operation. Engines that
// depend on it must fall back to plain Read when the assertion fails.
type Lane4Reader interface {
	// Read4xInt32 decodes the four little-endian words at [off, off+16).
	Read4xInt32(off uint64) ([4]int32, error)
}

func boundsErr(op string, off, n, size uint64) error {
	return fmt.Errorf("%w: %s [%d, %d) beyond size %d", ErrOutOfBounds, op, off, off+n, size)
}
