package dcd

import "math/rand"

// permutation produces the visiting order of one epoch. The slice is reused
// across epochs but reset and reshuffled every time, so no order carries over.
type permutation struct {
	random *rand.Rand
	index  []int
}

func newPermutation(random *rand.Rand, n int) *permutation {
	return &permutation{
		random: random,
		index:  make([]int, n),
	}
}

// next returns a fresh uniform permutation of [0, n).
func (p *permutation) next() []int {
	l := len(p.index)
	for i := 0; i < l; i++ {
		p.index[i] = i
	}
	for i := 0; i < l; i++ {
		j := i + p.random.Intn(l-i)
		swapIntArray(p.index, i, j)
	}
	return p.index
}

func swapIntArray(array []int, idxA int, idxB int) {
	array[idxA], array[idxB] = array[idxB], array[idxA]
}
