// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of allocated slices (64 bytes, one cache
// line), so 16-byte word batches never straddle a line.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size == 0 {
		return nil
	}

	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// AllocAlignedInt32 allocates an int32 slice of the given size with 64-byte
// alignment.
func AllocAlignedInt32(size int) []int32 {
	if size == 0 {
		return nil
	}

	byteSlice := AllocAligned(size * 4)

	// Safe because AllocAligned guarantees 64-byte alignment, which is
	// also the 4-byte alignment int32 requires.
	ptr := unsafe.Pointer(&byteSlice[0])     //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*int32)(ptr), size) //nolint:gosec // unsafe is required for memory alignment
}
