// Package engine implements the multiply engines: an in-memory tiled engine
// and two store-reading engines (lane-batched and scalar) that produce
// identical results.
package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/stablemat/stable"
)

// Kind identifies a multiply engine.
type Kind uint8

const (
	// Scalar reads 16-byte batches from the store and accumulates with a
	// scalar loop. Always available; the correctness reference.
	Scalar Kind = iota
	// Vectorized reads 4-lane word batches from the store and accumulates
	// per lane. Requires the store to support stable.Lane4Reader.
	Vectorized
	// Heap multiplies entirely in memory, tiled by a group size.
	Heap
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vectorized:
		return "vectorized"
	case Heap:
		return "heap"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind value.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar":
		return Scalar, true
	case "vectorized":
		return Vectorized, true
	case "heap":
		return Heap, true
	default:
		return Scalar, false
	}
}

// ErrLaneReadsUnsupported is returned by the vectorized engine when the
// store does not implement stable.Lane4Reader.
var ErrLaneReadsUnsupported = errors.New("engine: store does not support 4-lane batched reads")

// ErrBatchRemainder indicates that n is not a multiple of the engine's batch
// size. The affected elements would be silently dropped from the reduction,
// so the engine refuses to run instead.
type ErrBatchRemainder struct {
	N     int
	Batch int
}

func (e *ErrBatchRemainder) Error() string {
	return fmt.Sprintf("engine: n=%d is not a multiple of the batch size %d", e.N, e.Batch)
}

// EnvOverride is the environment variable that forces an engine selection.
const EnvOverride = "STABLEMAT_ENGINE"

// Select picks the store engine for the given store: the vectorized engine
// when the store supports lane reads, otherwise the scalar fallback.
// Setting STABLEMAT_ENGINE overrides the choice if the named engine is
// available on the store.
func Select(s stable.Store) Kind {
	if override := os.Getenv(EnvOverride); override != "" {
		if k, ok := ParseKind(override); ok && available(k, s) {
			return k
		}
		// Invalid or unavailable override - fall through to auto-detection
	}

	if _, ok := s.(stable.Lane4Reader); ok {
		return Vectorized
	}
	return Scalar
}

func available(k Kind, s stable.Store) bool {
	if k != Vectorized {
		return true
	}
	_, ok := s.(stable.Lane4Reader)
	return ok
}
