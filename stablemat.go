package stablemat

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/stablemat/engine"
	"github.com/hupe1980/stablemat/layout"
	"github.com/hupe1980/stablemat/mat"
	"github.com/hupe1980/stablemat/stable"
)

// Initialize compares layout.Pages against Store.Pages(), so the two page
// size constants must agree. Either array size goes negative if they drift.
var (
	_ [layout.PageSize - stable.PageSize]byte
	_ [stable.PageSize - layout.PageSize]byte
)

// Instance owns the matrix state and its mirror in the stable store.
//
// The host is expected to call Initialize exactly once, then any sequence of
// multiply calls, then read the result back through Out or StableOut. Every
// exported operation holds the instance mutex for its full duration, so a
// host that interleaves calls corrupts nothing; it just serializes.
type Instance struct {
	mu     sync.Mutex
	store  stable.Store
	opts   options
	state  *mat.State
	layout layout.Layout
}

// New creates an uninitialized Instance on top of the given store.
func New(store stable.Store, optFns ...Option) *Instance {
	opts := options{
		groupSize:        engine.DefaultGroupSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Instance{
		store: store,
		opts:  opts,
	}
}

// Initialize builds the n x d matrix A and the n-vector B with the
// deterministic synthetic fill, allocates the d-vector Out, grows the store
// to hold all three regions and mirrors A and B into it as little-endian
// words.
//
// Initialize is the only operation that changes the store's size. If the
// growth request is denied the instance stays uninitialized and the store
// untouched. Calling Initialize twice is an error; dimensions are fixed for
// the lifetime of the instance.
func (in *Instance) Initialize(n, d int) (err error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	start := time.Now()
	defer func() {
		in.opts.metricsCollector.RecordInitialize(time.Since(start), err)
	}()

	if in.state != nil {
		return ErrAlreadyInitialized
	}

	l, err := layout.Compute(n, d)
	if err != nil {
		return err
	}

	st, err := mat.NewState(n, d)
	if err != nil {
		return err
	}

	if cur := in.store.Pages(); l.Pages > cur {
		if _, err = in.store.Grow(l.Pages - cur); err != nil {
			return fmt.Errorf("stablemat: grow to %d pages: %w", l.Pages, err)
		}
	}

	if err = in.store.Write(l.AAddr, encodeWords(st.A)); err != nil {
		return fmt.Errorf("stablemat: mirror A: %w", err)
	}
	if err = in.store.Write(l.BAddr, encodeWords(st.B)); err != nil {
		return fmt.Errorf("stablemat: mirror B: %w", err)
	}

	in.state = st
	in.layout = l

	in.opts.logger.Debug("initialized",
		"n", n,
		"d", d,
		"pages", l.Pages,
		"bytes", l.Bytes,
		"duration", time.Since(start),
	)

	return nil
}

// MultiplyHeap computes Out = A * B entirely in memory with the configured
// group size. Shapes smaller than the group size clamp it to n, so the fixed
// default tiling works for small matrices; n must otherwise be a multiple of
// the group size. The store is untouched; the result lands in the in-memory
// Out readable via Out.
func (in *Instance) MultiplyHeap() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.multiply(engine.Heap)
}

// MultiplyStableVectorized computes Out = A * B with 4-lane batched reads
// from the store and writes the result to the store's Out region. Fails
// when the store lacks lane reads; use MultiplyStable for automatic
// fallback.
func (in *Instance) MultiplyStableVectorized() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.multiply(engine.Vectorized)
}

// MultiplyStableScalar is the always-available fallback: 16-byte batched
// store reads with an explicit scalar loop, byte-identical output to the
// vectorized engine.
func (in *Instance) MultiplyStableScalar() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.multiply(engine.Scalar)
}

// MultiplyStable runs the store engine selected for the instance's store:
// vectorized where lane reads are available, scalar otherwise. WithEngine
// or STABLEMAT_ENGINE override the selection.
func (in *Instance) MultiplyStable() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	kind := engine.Select(in.store)
	if in.opts.forcedEngine != nil {
		kind = *in.opts.forcedEngine
	}
	return in.multiply(kind)
}

func (in *Instance) multiply(kind engine.Kind) (err error) {
	start := time.Now()
	defer func() {
		in.opts.metricsCollector.RecordMultiply(kind.String(), time.Since(start), err)
	}()

	if in.state == nil {
		return ErrNotInitialized
	}

	switch kind {
	case engine.Heap:
		err = engine.Matmul(in.state, in.heapGroupSize())
	case engine.Vectorized:
		err = engine.StoreVectorized(in.state, in.store, in.layout)
	case engine.Scalar:
		err = engine.StoreScalar(in.state, in.store, in.layout)
	default:
		err = fmt.Errorf("stablemat: unknown engine %q", kind)
	}
	if err != nil {
		return err
	}

	in.opts.logger.Debug("multiplied",
		"engine", kind.String(),
		"n", in.state.N(),
		"d", in.state.D(),
		"duration", time.Since(start),
	)

	return nil
}

// heapGroupSize clamps the configured group size to n. The blocking is a
// locality tactic, never a semantic one, so a group spanning the whole row
// is as valid as any other.
func (in *Instance) heapGroupSize() int {
	groupSize := in.opts.groupSize
	if n := in.state.N(); n > 0 && n < groupSize {
		return n
	}
	return groupSize
}

// Ping does nothing. It exists as a baseline for measuring bare call
// overhead.
func (in *Instance) Ping() {
	in.mu.Lock()
	defer in.mu.Unlock()
}

// Out returns a copy of the in-memory output vector.
func (in *Instance) Out() ([]int32, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state == nil {
		return nil, ErrNotInitialized
	}

	out := make([]int32, len(in.state.Out))
	copy(out, in.state.Out)
	return out, nil
}

// StableOut reads the output vector back from the store's Out region.
func (in *Instance) StableOut() ([]int32, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state == nil {
		return nil, ErrNotInitialized
	}

	d := in.state.D()
	buf := make([]byte, d*layout.WordSize)
	if err := in.store.Read(in.layout.OutAddr, buf); err != nil {
		return nil, err
	}

	out := make([]int32, d)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*layout.WordSize:]))
	}
	return out, nil
}

// Layout returns the store layout computed at initialization.
func (in *Instance) Layout() (layout.Layout, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state == nil {
		return layout.Layout{}, ErrNotInitialized
	}
	return in.layout, nil
}

func encodeWords(words []int32) []byte {
	buf := make([]byte, len(words)*layout.WordSize)
	for i, v := range words {
		binary.LittleEndian.PutUint32(buf[i*layout.WordSize:], uint32(v))
	}
	return buf
}
