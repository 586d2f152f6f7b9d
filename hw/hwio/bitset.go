package hwio

import (
	"fmt"
	"math/bits"
)

const (
	NumBits  = 0x10000 // one bit per bus address
	wordSize = 64
	numWords = NumBits / wordSize
)

// Bitset is a set of bus addresses. The zero value is empty.
type Bitset struct {
	words [numWords]uint64
}

func (b *Bitset) Set(i uint16) {
	b.words[i/wordSize] |= 1 << (i % wordSize)
}

func (b *Bitset) Clear(i uint16) {
	b.words[i/wordSize] &^= 1 << (i % wordSize)
}

func (b *Bitset) Test(i uint16) bool {
	return b.words[i/wordSize]&(1<<(i%wordSize)) != 0
}

// SetRange sets all bits in the half-open interval [start, end).
func (b *Bitset) SetRange(start, end uint) {
	b.applyRange(start, end, func(w *uint64, mask uint64) { *w |= mask })
}

// ClearRange clears all bits in the half-open interval [start, end).
func (b *Bitset) ClearRange(start, end uint) {
	b.applyRange(start, end, func(w *uint64, mask uint64) { *w &^= mask })
}

func (b *Bitset) applyRange(start, end uint, op func(*uint64, uint64)) {
	if start >= end || end > NumBits {
		panic(fmt.Sprintf("invalid range [%d, %d)", start, end))
	}
	first, last := start/wordSize, (end-1)/wordSize
	lo, hi := start%wordSize, (end-1)%wordSize

	for i := first; i <= last; i++ {
		mask := ^uint64(0)
		if i == first {
			mask &= ^uint64(0) << lo
		}
		if i == last && hi != wordSize-1 {
			mask &= (uint64(1) << (hi + 1)) - 1
		}
		op(&b.words[i], mask)
	}
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *Bitset) Reset() {
	clear(b.words[:])
}
