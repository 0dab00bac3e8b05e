// Package stablemat implements a fixed-shape int32 matrix-by-vector multiply
// whose operands live either in process memory or in a growable, byte
// addressable stable store, to compare the cost of the same reduction under
// the two residency models.
//
// Three interchangeable engines produce numerically identical results:
//
//   - Heap: in-memory, tiled by a group size for cache locality
//   - Vectorized: 4-lane batched reads straight from the stable store
//   - Scalar: 16-byte batched store reads with an explicit scalar loop,
//     the correctness reference
//
// # Quick start
//
//	st := stablemat.New(stable.NewMemStore())
//	if err := st.Initialize(256, 64); err != nil {
//	    panic(err)
//	}
//	if err := st.MultiplyStable(); err != nil {
//	    panic(err)
//	}
//	out, _ := st.StableOut()
//
// The initializer fills A and B with a deterministic synthetic sequence
// (element i equals i truncated to 32 bits) and mirrors both into the store
// as little-endian words, laid out as [A | B | Out] with no padding. All
// accumulation is 32-bit with two's-complement wraparound; results are never
// widened.
//
// Use stable.OpenFileStore for a file-backed store whose contents survive
// reopening, or implement stable.Store for your own backend. Stores that
// additionally implement stable.Lane4Reader get the vectorized engine;
// others fall back to the scalar engine with identical output. Set
// STABLEMAT_ENGINE=scalar|vectorized to force the choice.
package stablemat
