package stable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, uint64(0), s.Pages())

	prev, err := s.Grow(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), prev)
	require.Equal(t, uint64(PageSize), s.Size())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(PageSize), fi.Size())

	require.NoError(t, s.WriteInt32(0, 42))
	require.NoError(t, s.WriteInt32(PageSize-4, -7))

	lanes, err := s.Read4xInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), lanes[0])
}

func TestFileStore_GrowRemaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Grow(1)
	require.NoError(t, err)
	require.NoError(t, s.WriteInt32(16, 1234))

	// Grow again and make sure old contents are still there and the new
	// page is addressable.
	prev, err := s.Grow(2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), prev)
	require.Equal(t, uint64(3), s.Pages())

	got := make([]byte, 4)
	require.NoError(t, s.Read(16, got))
	require.Equal(t, []byte{0xd2, 0x04, 0x00, 0x00}, got)

	require.NoError(t, s.WriteInt32(2*PageSize+8, 9))
}

func TestFileStore_Retention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, err = s.Grow(1)
	require.NoError(t, err)
	require.NoError(t, s.WriteInt32(128, -99))
	require.NoError(t, s.Sync())
	require.NoError(t, s.Close())

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, uint64(1), reopened.Pages())
	lanes, err := reopened.Read4xInt32(128)
	require.NoError(t, err)
	require.Equal(t, int32(-99), lanes[0])
}

func TestFileStore_CapacityDenied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	s, err := OpenFileStoreWithLimit(path, 1)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Grow(2)
	require.ErrorIs(t, err, ErrCapacity)
	require.Equal(t, uint64(0), s.Pages())
}

func TestFileStore_RejectsUnalignedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a page"), 0o644))

	_, err := OpenFileStore(path)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestFileStore_ClosedAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, err = s.Grow(1)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close is idempotent")

	require.ErrorIs(t, s.Read(0, make([]byte, 4)), ErrClosed)
	require.ErrorIs(t, s.Write(0, make([]byte, 4)), ErrClosed)
	_, err = s.Grow(1)
	require.ErrorIs(t, err, ErrClosed)
}
