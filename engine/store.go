package engine

import (
	"github.com/hupe1980/stablemat/layout"
	"github.com/hupe1980/stablemat/mat"
	"github.com/hupe1980/stablemat/stable"
)

// batchAccumulator folds one 4-element batch of A and B, read from the
// store, into a running row accumulator. The lane and scalar engines are
// the two implementations of this contract; everything else about a store
// multiply is shared.
type batchAccumulator interface {
	// reset clears the accumulator for the next output row.
	reset()
	// readAccumulate reads the 4-element batches at aOff and bOff and
	// accumulates their element-wise products.
	readAccumulate(aOff, bOff uint64) error
	// sum reduces the accumulator to the row's scalar result.
	sum() int32
}

// storeMultiply runs one multiply pass against the store: for each output
// row it accumulates 4-element batches of A and B and writes the reduced
// scalar to the Out region. Only the Out region of the store is mutated.
func storeMultiply(s stable.Store, l layout.Layout, n, d uint64, acc batchAccumulator) error {
	for i := uint64(0); i < d; i++ {
		acc.reset()
		for j := uint64(0); j < n; j += 4 {
			if err := acc.readAccumulate(l.AOffset(i, j, n), l.BOffset(j)); err != nil {
				return err
			}
		}

		if err := s.WriteInt32(l.OutOffset(i), acc.sum()); err != nil {
			return err
		}
	}

	return nil
}

// StoreVectorized computes Out = A * B from the store using 4-lane batched
// reads. The state is consulted only to recover n and d; A and B are read
// from the store. The result is written to the store's Out region.
//
// Returns ErrLaneReadsUnsupported when the store lacks lane reads, and
// ErrBatchRemainder when n is not a multiple of 4. Neither error mutates
// the store.
func StoreVectorized(st *mat.State, s stable.Store, l layout.Layout) error {
	lr, ok := s.(stable.Lane4Reader)
	if !ok {
		return ErrLaneReadsUnsupported
	}

	n := st.N()
	if n%4 != 0 {
		return &ErrBatchRemainder{N: n, Batch: 4}
	}

	return storeMultiply(s, l, uint64(n), uint64(st.D()), &laneAccumulator{lr: lr})
}

// StoreScalar computes Out = A * B from the store reading 16-byte batches
// and accumulating with a scalar loop. Functionally identical to
// StoreVectorized; always available.
func StoreScalar(st *mat.State, s stable.Store, l layout.Layout) error {
	n := st.N()
	if n%4 != 0 {
		return &ErrBatchRemainder{N: n, Batch: 4}
	}

	return storeMultiply(s, l, uint64(n), uint64(st.D()), &scalarAccumulator{s: s})
}
