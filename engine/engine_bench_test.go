package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stablemat/mat"
	"github.com/hupe1980/stablemat/stable"
)

const (
	benchN = 256
	benchD = 64
)

func BenchmarkHeap(b *testing.B) {
	st, err := mat.NewState(benchN, benchD)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Matmul(st, DefaultGroupSize); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStoreVectorized(b *testing.B) {
	st, err := mat.NewState(benchN, benchD)
	require.NoError(b, err)

	s := stable.NewMemStore()
	l := mirrorState(b, st, s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := StoreVectorized(st, s, l); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStoreScalar(b *testing.B) {
	st, err := mat.NewState(benchN, benchD)
	require.NoError(b, err)

	s := stable.NewMemStore()
	l := mirrorState(b, st, s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := StoreScalar(st, s, l); err != nil {
			b.Fatal(err)
		}
	}
}
