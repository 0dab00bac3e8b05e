package engine

import (
	"fmt"

	"github.com/hupe1980/stablemat/mat"
)

// DefaultGroupSize is the tiling parameter used by the host boundary.
const DefaultGroupSize = 64

// Matmul computes Out = A * B entirely in memory, processing each row in
// contiguous blocks of groupSize elements for cache locality. The blocking
// never changes the result; all accumulation is 32-bit with two's-complement
// wraparound.
//
// Precondition: n must be a multiple of groupSize. A remainder would be
// dropped from the reduction, so it is rejected up front instead.
func Matmul(st *mat.State, groupSize int) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if groupSize <= 0 {
		return fmt.Errorf("engine: invalid group size %d", groupSize)
	}

	n := st.N()
	d := st.D()
	if n%groupSize != 0 {
		return &ErrBatchRemainder{N: n, Batch: groupSize}
	}

	for i := 0; i < d; i++ {
		row := st.A[i*n : i*n+n]

		var val int32
		for j := 0; j < n; j += groupSize {
			aGroup := row[j : j+groupSize]
			bGroup := st.B[j : j+groupSize]

			var ival int32
			for k := 0; k < groupSize; k++ {
				ival += aGroup[k] * bGroup[k]
			}
			val += ival
		}
		st.Out[i] = val
	}

	return nil
}
