// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import "iter"

// BatchIterator enumerates every outer index combination (y, z, w) of a set of
// views that share the same outer extents, producing for each combination the
// offset of the corresponding run in every view.
//
// Combinations are numbered by a flattened batch index in [0, Len()), with y
// varying fastest and w slowest. The batch index is what parallel schedulers
// split; the order itself carries no meaning since runs are independent.
type BatchIterator struct {
	dims    Dims
	strides []Strides
}

// NewBatchIterator returns an iterator over the outer dimensions of dims that
// yields one offset per entry of strides.
func NewBatchIterator(dims Dims, strides ...Strides) *BatchIterator {
	return &BatchIterator{dims: dims, strides: strides}
}

// Len returns dims[1]*dims[2]*dims[3].
func (b *BatchIterator) Len() int {
	return b.dims.Batches()
}

// Views returns the number of views the iterator produces offsets for.
func (b *BatchIterator) Views() int {
	return len(b.strides)
}

// Coord maps batch index i to its outer coordinate.
func (b *BatchIterator) Coord(i int) (y, z, w int) {
	y = i % b.dims[1]
	i /= b.dims[1]
	z = i % b.dims[2]
	w = i / b.dims[2]
	return y, z, w
}

// Offsets writes the run offset of batch index i for every view into dst,
// growing it if needed, and returns it.
func (b *BatchIterator) Offsets(i int, dst []int) []int {
	if cap(dst) < len(b.strides) {
		dst = make([]int, len(b.strides))
	}
	dst = dst[:len(b.strides)]
	y, z, w := b.Coord(i)
	for v, s := range b.strides {
		dst[v] = w*s[3] + z*s[2] + y*s[1]
	}
	return dst
}

// All yields every batch index with the offsets of its run in each view, in
// w-major, then z, then y order. The offsets slice is reused between
// iterations. The sequence can be ranged over any number of times.
func (b *BatchIterator) All() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		offs := make([]int, len(b.strides))
		i := 0
		for w := 0; w < b.dims[3]; w++ {
			for z := 0; z < b.dims[2]; z++ {
				for y := 0; y < b.dims[1]; y++ {
					for v, s := range b.strides {
						offs[v] = w*s[3] + z*s[2] + y*s[1]
					}
					if !yield(i, offs) {
						return
					}
					i++
				}
			}
		}
	}
}
