package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocAligned(t *testing.T) {
	for _, size := range []int{1, 7, 64, 100, 4096} {
		buf := AllocAligned(size)
		require.Len(t, buf, size)

		addr := uintptr(unsafe.Pointer(&buf[0]))
		require.Zero(t, addr%Alignment, "size %d not aligned", size)
	}
}

func TestAllocAligned_Zero(t *testing.T) {
	require.Nil(t, AllocAligned(0))
	require.Nil(t, AllocAlignedInt32(0))
}

func TestAllocAlignedInt32(t *testing.T) {
	s := AllocAlignedInt32(33)
	require.Len(t, s, 33)

	addr := uintptr(unsafe.Pointer(&s[0]))
	require.Zero(t, addr%Alignment)

	// Slice is writable over its whole length.
	for i := range s {
		s[i] = int32(i)
	}
	require.Equal(t, int32(32), s[32])
}
