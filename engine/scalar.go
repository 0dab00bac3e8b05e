package engine

import (
	"encoding/binary"

	"github.com/hupe1980/stablemat/stable"
)

// scalarAccumulator is the fallback batchAccumulator: it reads raw 16-byte
// batches and decodes each word explicitly as little-endian, matching the
// byte order the initializer wrote, never the host-native layout.
type scalarAccumulator struct {
	s    stable.Store
	val  int32
	aBuf [16]byte
	bBuf [16]byte
}

func (a *scalarAccumulator) reset() {
	a.val = 0
}

func (a *scalarAccumulator) readAccumulate(aOff, bOff uint64) error {
	if err := a.s.Read(aOff, a.aBuf[:]); err != nil {
		return err
	}
	if err := a.s.Read(bOff, a.bBuf[:]); err != nil {
		return err
	}

	var ival int32
	for k := 0; k < 4; k++ {
		av := int32(binary.LittleEndian.Uint32(a.aBuf[k*4 : k*4+4]))
		bv := int32(binary.LittleEndian.Uint32(a.bBuf[k*4 : k*4+4]))
		ival += av * bv
	}
	a.val += ival
	return nil
}

func (a *scalarAccumulator) sum() int32 {
	return a.val
}
