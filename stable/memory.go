package stable

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// DefaultMaxPages caps a MemStore at 65536 pages (4 GiB), matching the
// address range of a 32-bit linear memory.
const DefaultMaxPages = 65536

// MemStore is an in-memory Store implementation.
// Thread-safe for concurrent reads and writes.
type MemStore struct {
	mu       sync.RWMutex
	data     []byte
	maxPages uint64
}

var _ Store = (*MemStore)(nil)
var _ Lane4Reader = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store with the default page ceiling.
func NewMemStore() *MemStore {
	return NewMemStoreWithLimit(DefaultMaxPages)
}

// NewMemStoreWithLimit creates an empty in-memory store that refuses to grow
// beyond maxPages pages.
func NewMemStoreWithLimit(maxPages uint64) *MemStore {
	return &MemStore{maxPages: maxPages}
}

// Grow extends the store by the given number of pages.
func (m *MemStore) Grow(pages uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := uint64(len(m.data)) / PageSize
	if prev+pages > m.maxPages {
		return 0, fmt.Errorf("%w: %d + %d pages over limit %d", ErrCapacity, prev, pages, m.maxPages)
	}

	grown := make([]byte, (prev+pages)*PageSize)
	copy(grown, m.data)
	m.data = grown

	return prev, nil
}

// Pages returns the number of currently allocated pages.
func (m *MemStore) Pages() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return uint64(len(m.data)) / PageSize
}

// Size returns the current store size in bytes.
func (m *MemStore) Size() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return uint64(len(m.data))
}

// Read copies len(p) bytes starting at off into p.
func (m *MemStore) Read(off uint64, p []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if off+uint64(len(p)) > uint64(len(m.data)) {
		return boundsErr("read", off, uint64(len(p)), uint64(len(m.data)))
	}
	copy(p, m.data[off:])
	return nil
}

// Write copies p into the store starting at off.
func (m *MemStore) Write(off uint64, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off+uint64(len(p)) > uint64(len(m.data)) {
		return boundsErr("write", off, uint64(len(p)), uint64(len(m.data)))
	}
	copy(m.data[off:], p)
	return nil
}

// WriteInt32 writes v at off as a 4-byte little-endian word.
func (m *MemStore) WriteInt32(off uint64, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return m.Write(off, buf[:])
}

// Read4xInt32 decodes the four little-endian words at [off, off+16).
func (m *MemStore) Read4xInt32(off uint64) ([4]int32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var lanes [4]int32
	if off+16 > uint64(len(m.data)) {
		return lanes, boundsErr("read4xi32", off, 16, uint64(len(m.data)))
	}

	batch := m.data[off : off+16]
	lanes[0] = int32(binary.LittleEndian.Uint32(batch[0:4]))
	lanes[1] = int32(binary.LittleEndian.Uint32(batch[4:8]))
	lanes[2] = int32(binary.LittleEndian.Uint32(batch[8:12]))
	lanes[3] = int32(binary.LittleEndian.Uint32(batch[12:16]))
	return lanes, nil
}
