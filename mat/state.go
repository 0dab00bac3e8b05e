// Package mat holds the in-memory matrix operands.
package mat

import (
	"fmt"

	"github.com/hupe1980/stablemat/internal/conv"
	"github.com/hupe1980/stablemat/internal/mem"
)

// State is the in-memory mirror of the matrix operands: the matrix A in
// row-major order (row i occupies A[i*n : i*n+n]), the input vector B and
// the output vector Out. Shapes are fixed at construction; the slices are
// never resized.
type State struct {
	// A is the n x d matrix, row-major, n*d elements.
	A []int32
	// B is the input vector, n elements.
	B []int32
	// Out is the output vector, d elements.
	Out []int32
}

// NewState builds a State with the deterministic synthetic fill: element i
// of the flattened A equals i truncated to 32 bits (two's-complement
// wraparound at 2^32), likewise for B. Out starts zeroed. Slices are
// 64-byte aligned so word batches never straddle a cache line.
func NewState(n, d int) (*State, error) {
	un, err := conv.IntToUint64(n)
	if err != nil {
		return nil, fmt.Errorf("mat: invalid n: %w", err)
	}
	ud, err := conv.IntToUint64(d)
	if err != nil {
		return nil, fmt.Errorf("mat: invalid d: %w", err)
	}

	total, err := conv.Uint64ToInt(un * ud)
	if err != nil {
		return nil, fmt.Errorf("mat: n*d overflows: %w", err)
	}

	st := &State{
		A:   mem.AllocAlignedInt32(total),
		B:   mem.AllocAlignedInt32(n),
		Out: mem.AllocAlignedInt32(d),
	}

	for i := range st.A {
		st.A[i] = int32(uint32(i))
	}
	for i := range st.B {
		st.B[i] = int32(uint32(i))
	}

	return st, nil
}

// N returns the shared dimension (the length of B).
func (s *State) N() int { return len(s.B) }

// D returns the number of output rows (the length of Out).
func (s *State) D() int { return len(s.Out) }

// Validate checks the shape invariant len(A) == N()*D().
func (s *State) Validate() error {
	if len(s.A) != s.N()*s.D() {
		return fmt.Errorf("mat: shape mismatch: len(A)=%d, n=%d, d=%d", len(s.A), s.N(), s.D())
	}
	return nil
}
