package cache

import (
	"github.com/frozenpine/pool"
)

func AlignUp(x int) int {
	return (x + 1) &^ 1
}

// MaxBytesSize largest pooled slice size, large enough for a jumbo-less
// ethernet frame
const MaxBytesSize = pool.MaxBytesSize

// BytesPool pool of fixed size byte slices for captured frames
type BytesPool struct {
	size   int
	slices *pool.BytesPool
}

func NewBytesPool(size int) *BytesPool {
	if size <= 0 {
		size = MaxBytesSize
	} else {
		size = AlignUp(size)

		if size > MaxBytesSize {
			size = MaxBytesSize
		}
	}

	return &BytesPool{
		size:   size,
		slices: pool.NewBytesPool(size),
	}
}

// Size slice size served by pool
func (bp *BytesPool) Size() int {
	return bp.size
}

// GetSlice get a zeroed slice of pool size
func (bp *BytesPool) GetSlice() []byte {
	return bp.slices.GetEmptySlice()
}

// Clone copy data into a pooled slice, data larger than pool size gets a
// fresh allocation.
func (bp *BytesPool) Clone(data []byte) []byte {
	if len(data) > bp.size {
		result := make([]byte, len(data))
		copy(result, data)
		return result
	}

	if len(data) == 0 {
		return bp.slices.GetSlice()[:0]
	}

	bytes := bp.slices.GetSizedSlice(len(data))
	copy(bytes, data)

	return bytes
}

// PutSlice returns data to pool, slices shorter than pool size are dropped
func (bp *BytesPool) PutSlice(data []byte) {
	bp.slices.PutSlice(data)
}
