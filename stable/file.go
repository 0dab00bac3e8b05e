package stable

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrInvalidSize is returned when a backing file's size is not a whole
// number of pages.
var ErrInvalidSize = errors.New("stable: backing file size is not page-aligned")

// FileStore is a file-backed Store using a writable memory mapping.
// The file holds the raw little-endian page data, so the store's contents
// survive closing and reopening the same path.
type FileStore struct {
	mu       sync.RWMutex
	f        *os.File
	data     []byte
	unmap    func([]byte) error
	maxPages uint64
	closed   bool
}

var _ Store = (*FileStore)(nil)
var _ Lane4Reader = (*FileStore)(nil)

// OpenFileStore opens or creates the file at path and maps it into memory.
// An existing file must be a whole number of pages.
func OpenFileStore(path string) (*FileStore, error) {
	return OpenFileStoreWithLimit(path, DefaultMaxPages)
}

// OpenFileStoreWithLimit is OpenFileStore with an explicit page ceiling.
func OpenFileStoreWithLimit(path string, maxPages uint64) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stable: open %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size < 0 || size%PageSize != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}

	s := &FileStore{f: f, maxPages: maxPages}
	if size > 0 {
		data, unmap, err := osMapRW(f, int(size))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stable: map %s: %w", path, err)
		}
		s.data = data
		s.unmap = unmap
	}

	return s, nil
}

// Grow extends the backing file by the given number of pages and remaps it.
func (s *FileStore) Grow(pages uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	prev := uint64(len(s.data)) / PageSize
	if prev+pages > s.maxPages {
		return 0, fmt.Errorf("%w: %d + %d pages over limit %d", ErrCapacity, prev, pages, s.maxPages)
	}
	if pages == 0 {
		return prev, nil
	}

	// The old view must go away before the file changes size; a stale
	// mapping past EOF faults on access.
	if s.data != nil {
		if err := s.unmap(s.data); err != nil {
			return 0, err
		}
		s.data = nil
		s.unmap = nil
	}

	newSize := int64((prev + pages) * PageSize)
	if err := s.f.Truncate(newSize); err != nil {
		return 0, fmt.Errorf("stable: grow to %d bytes: %w", newSize, err)
	}

	data, unmap, err := osMapRW(s.f, int(newSize))
	if err != nil {
		return 0, fmt.Errorf("stable: remap after grow: %w", err)
	}
	s.data = data
	s.unmap = unmap

	return prev, nil
}

// Pages returns the number of currently allocated pages.
func (s *FileStore) Pages() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.data)) / PageSize
}

// Size returns the current store size in bytes.
func (s *FileStore) Size() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.data))
}

// Read copies len(p) bytes starting at off into p.
func (s *FileStore) Read(off uint64, p []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if off+uint64(len(p)) > uint64(len(s.data)) {
		return boundsErr("read", off, uint64(len(p)), uint64(len(s.data)))
	}
	copy(p, s.data[off:])
	return nil
}

// Write copies p into the store starting at off.
func (s *FileStore) Write(off uint64, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if off+uint64(len(p)) > uint64(len(s.data)) {
		return boundsErr("write", off, uint64(len(p)), uint64(len(s.data)))
	}
	copy(s.data[off:], p)
	return nil
}

// WriteInt32 writes v at off as a 4-byte little-endian word.
func (s *FileStore) WriteInt32(off uint64, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return s.Write(off, buf[:])
}

// Read4xInt32 decodes the four little-endian words at [off, off+16).
func (s *FileStore) Read4xInt32(off uint64) ([4]int32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lanes [4]int32
	if s.closed {
		return lanes, ErrClosed
	}
	if off+16 > uint64(len(s.data)) {
		return lanes, boundsErr("read4xi32", off, 16, uint64(len(s.data)))
	}

	batch := s.data[off : off+16]
	lanes[0] = int32(binary.LittleEndian.Uint32(batch[0:4]))
	lanes[1] = int32(binary.LittleEndian.Uint32(batch[4:8]))
	lanes[2] = int32(binary.LittleEndian.Uint32(batch[8:12]))
	lanes[3] = int32(binary.LittleEndian.Uint32(batch[12:16]))
	return lanes, nil
}

// Sync flushes mapped pages to the backing file.
func (s *FileStore) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.data == nil {
		return nil
	}
	return osSync(s.data)
}

// Close unmaps the store and closes the backing file. It is idempotent.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.data != nil {
		err = s.unmap(s.data)
		s.data = nil
		s.unmap = nil
	}
	if closeErr := s.f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
