package buffer

import (
	"sync"
	"unsafe"
)

// scratch is pooled word-aligned storage for converted scalar copies.
type scratch struct {
	words []uint64
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{words: make([]uint64, 0, 64)}
	},
}

const maxPooledScratchWords = 1 << 14

// scratchFor returns n zeroed elements of T backed by pooled storage. The
// scratch must be released once the elements are no longer used.
func scratchFor[T Scalar](n int) ([]T, *scratch) {
	s := scratchPool.Get().(*scratch)
	if n == 0 {
		return []T{}, s
	}
	var zero T
	words := (n*int(unsafe.Sizeof(zero)) + 7) / 8
	if cap(s.words) < words {
		s.words = make([]uint64, words)
	} else {
		s.words = s.words[:words]
		clear(s.words)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&s.words[0])), n), s
}

// release returns the scratch to the pool. Large buffers are dropped.
func (s *scratch) release() {
	if cap(s.words) > maxPooledScratchWords {
		return
	}
	s.words = s.words[:0]
	scratchPool.Put(s)
}
