// Package layout computes the byte layout of the stable address space.
//
// One contiguous region holds the matrix A (n*d words), the input vector B
// (n words) and the output vector Out (d words), in that order, with no
// padding. All words are 4-byte little-endian signed integers.
package layout

import "fmt"

const (
	// WordSize is the size of one matrix element in bytes.
	WordSize = 4
	// PageSize is the allocation granularity of the stable store in bytes.
	PageSize = 64 * 1024
)

// Layout describes where A, B and Out live inside the stable address space.
type Layout struct {
	// AAddr is the byte offset of the matrix A. Always 0.
	AAddr uint64
	// BAddr is the byte offset of the vector B.
	BAddr uint64
	// OutAddr is the byte offset of the output vector Out.
	OutAddr uint64
	// Words is the total number of 4-byte words (n*d + n + d).
	Words uint64
	// Bytes is the total region size in bytes.
	Bytes uint64
	// Pages is the minimum number of store pages that hold the region.
	// At least 1, so the store is usable even for empty shapes.
	Pages uint64
}

// Compute returns the layout for an n x d matrix times an n-vector.
// All offsets are word-aligned by construction.
func Compute(n, d int) (Layout, error) {
	if n < 0 || d < 0 {
		return Layout{}, fmt.Errorf("layout: negative dimensions n=%d d=%d", n, d)
	}

	un := uint64(n)
	ud := uint64(d)

	words := un*ud + un + ud
	bytes := words * WordSize

	pages := (bytes + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}

	return Layout{
		AAddr:   0,
		BAddr:   un * ud * WordSize,
		OutAddr: (un*ud + un) * WordSize,
		Words:   words,
		Bytes:   bytes,
		Pages:   pages,
	}, nil
}

// AOffset returns the byte offset of A[row*n+col].
func (l Layout) AOffset(row, col, n uint64) uint64 {
	return l.AAddr + (row*n+col)*WordSize
}

// BOffset returns the byte offset of B[i].
func (l Layout) BOffset(i uint64) uint64 {
	return l.BAddr + i*WordSize
}

// OutOffset returns the byte offset of Out[i].
func (l Layout) OutOffset(i uint64) uint64 {
	return l.OutAddr + i*WordSize
}
