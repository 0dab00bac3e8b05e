package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute_Offsets(t *testing.T) {
	// n=4, d=2: A is 8 words (32 bytes), B is 4 words (16 bytes).
	l, err := Compute(4, 2)
	require.NoError(t, err)

	require.Equal(t, uint64(0), l.AAddr)
	require.Equal(t, uint64(32), l.BAddr)
	require.Equal(t, uint64(48), l.OutAddr)
	require.Equal(t, uint64(14), l.Words)
	require.Equal(t, uint64(56), l.Bytes)
	require.Equal(t, uint64(1), l.Pages)
}

func TestCompute_WordAlignment(t *testing.T) {
	for _, tc := range []struct{ n, d int }{
		{1, 1}, {3, 7}, {4, 2}, {256, 64}, {1000, 13},
	} {
		l, err := Compute(tc.n, tc.d)
		require.NoError(t, err)
		require.Zero(t, l.AAddr%WordSize)
		require.Zero(t, l.BAddr%WordSize)
		require.Zero(t, l.OutAddr%WordSize)
	}
}

func TestCompute_MinimumOnePage(t *testing.T) {
	l, err := Compute(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), l.Bytes)
	require.Equal(t, uint64(1), l.Pages)
}

func TestCompute_ExactPageBoundary(t *testing.T) {
	// (n*d + n + d) * 4 == 65536 words*4: pick n=127, d=128:
	// 127*128 + 127 + 128 = 16256 + 255 = 16511 words -> not exact.
	// Use n=16384, d=0: 0 + 16384 + 0 = 16384 words = 65536 bytes.
	l, err := Compute(16384, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(PageSize), l.Bytes)
	require.Equal(t, uint64(1), l.Pages, "exact multiple must not allocate an extra page")

	// One word over the boundary needs a second page.
	l, err = Compute(16385, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(2), l.Pages)
}

func TestCompute_NegativeDimensions(t *testing.T) {
	_, err := Compute(-1, 2)
	require.Error(t, err)
	_, err = Compute(2, -1)
	require.Error(t, err)
}

func TestOffsetHelpers(t *testing.T) {
	l, err := Compute(4, 2)
	require.NoError(t, err)

	require.Equal(t, uint64(0), l.AOffset(0, 0, 4))
	require.Equal(t, uint64(20), l.AOffset(1, 1, 4))
	require.Equal(t, uint64(32), l.BOffset(0))
	require.Equal(t, uint64(36), l.BOffset(1))
	require.Equal(t, uint64(48), l.OutOffset(0))
	require.Equal(t, uint64(52), l.OutOffset(1))
}
