package engine

import (
	"github.com/hupe1980/stablemat/stable"
)

// laneAccumulator is the vectorized batchAccumulator: one Read4xInt32 per
// operand, element-wise multiply, lane-wise add. Lanes are reduced only once
// per row, in sum.
type laneAccumulator struct {
	lr    stable.Lane4Reader
	lanes [4]int32
}

func (a *laneAccumulator) reset() {
	a.lanes = [4]int32{}
}

func (a *laneAccumulator) readAccumulate(aOff, bOff uint64) error {
	aGroup, err := a.lr.Read4xInt32(aOff)
	if err != nil {
		return err
	}
	bGroup, err := a.lr.Read4xInt32(bOff)
	if err != nil {
		return err
	}

	a.lanes[0] += aGroup[0] * bGroup[0]
	a.lanes[1] += aGroup[1] * bGroup[1]
	a.lanes[2] += aGroup[2] * bGroup[2]
	a.lanes[3] += aGroup[3] * bGroup[3]
	return nil
}

func (a *laneAccumulator) sum() int32 {
	return a.lanes[0] + a.lanes[1] + a.lanes[2] + a.lanes[3]
}
