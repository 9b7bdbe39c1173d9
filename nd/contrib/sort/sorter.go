// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package sort

import (
	"cmp"
	"fmt"
	"math"

	"github.com/go-ndsort/ndsort/nd"
)

// Sorter holds the scratch space for sorting runs of element type T in one
// direction. Reusing a Sorter across runs of similar length avoids
// allocating per run. A Sorter is not safe for concurrent use.
type Sorter[T nd.Number] struct {
	keyer   keyer[T]
	keys    []uint64
	keysTmp []uint64
	perm    []nd.Index
	permTmp []nd.Index
	vals    []T
}

// NewSorter returns a Sorter with scratch space for runs of length n.
func NewSorter[T nd.Number](n int, dir nd.Direction) *Sorter[T] {
	s := &Sorter[T]{keyer: newKeyer[T](dir)}
	s.grow(n)
	return s
}

// Direction returns the direction s sorts in.
func (s *Sorter[T]) Direction() nd.Direction {
	if s.keyer.desc {
		return nd.Descending
	}
	return nd.Ascending
}

func (s *Sorter[T]) grow(n int) {
	if cap(s.keys) >= n {
		return
	}
	s.keys = make([]uint64, n)
	s.keysTmp = make([]uint64, n)
	s.perm = make([]nd.Index, n)
	s.permTmp = make([]nd.Index, n)
	s.vals = make([]T, n)
}

// order computes the stable sorting permutation of run. perm[i] is the
// position in run of the element that belongs at position i. identity is
// true when run is already in order, in which case perm is the identity.
func (s *Sorter[T]) order(run []T) (perm []nd.Index, identity bool) {
	n := len(run)
	if nd.DebugChecks && uint64(n) > math.MaxUint32 {
		panic(&nd.PreconditionError{Op: "sort", Reason: fmt.Sprintf("run of %d elements overflows the index type", n)})
	}
	s.grow(n)

	keys := s.keys[:n]
	perm = s.perm[:n]
	for i := range perm {
		perm[i] = nd.Index(i)
	}
	if s.keyer.fill(keys, run) {
		return perm, true
	}
	orderKeys(keys, s.keysTmp, perm, s.permTmp, s.keyer.bits)
	return perm, false
}

// Sort sorts run in place.
func (s *Sorter[T]) Sort(run []T) {
	if len(run) <= 1 {
		return
	}
	if perm, identity := s.order(run); !identity {
		s.vals = permute(run, perm, s.vals)
	}
}

// SortWithIndices sorts run in place and writes to idx, for every output
// position, the original position within run of the value now there. idx
// must be at least as long as run.
func (s *Sorter[T]) SortWithIndices(run []T, idx []nd.Index) {
	perm, identity := s.order(run)
	if !identity {
		s.vals = permute(run, perm, s.vals)
	}
	copy(idx, perm)
}

// SortByKeyWith sorts keys in place with s and reorders vals the same way.
// tmp is scratch for the values; the possibly grown scratch is returned so
// callers can keep reusing it.
func SortByKeyWith[K nd.Number, V any](s *Sorter[K], keys []K, vals []V, tmp []V) []V {
	if len(keys) <= 1 {
		return tmp
	}
	perm, identity := s.order(keys)
	if identity {
		return tmp
	}
	s.vals = permute(keys, perm, s.vals)
	return permute(vals[:len(keys)], perm, tmp)
}

// permute rearranges run so that run[i] becomes the old run[perm[i]], using
// buf as scratch. It returns buf, grown if it was too short.
func permute[E any](run []E, perm []nd.Index, buf []E) []E {
	if cap(buf) < len(run) {
		buf = make([]E, len(run))
	}
	buf = buf[:len(run)]
	for i, p := range perm {
		buf[i] = run[p]
	}
	copy(run, buf)
	return buf
}

// Sort sorts run in place in direction dir. Equal elements keep their
// relative order.
func Sort[T nd.Number](run []T, dir nd.Direction) {
	NewSorter[T](len(run), dir).Sort(run)
}

// SortWithIndices sorts run in place in direction dir and fills idx with the
// original position of every sorted value.
func SortWithIndices[T nd.Number](run []T, idx []nd.Index, dir nd.Direction) {
	NewSorter[T](len(run), dir).SortWithIndices(run, idx)
}

// SortByKey sorts keys in place in direction dir and moves vals with them.
func SortByKey[K nd.Number, V any](keys []K, vals []V, dir nd.Direction) {
	SortByKeyWith(NewSorter[K](len(keys), dir), keys, vals, nil)
}

// Order is the total order the sorts produce for one direction.
type Order[T nd.Number] struct {
	k keyer[T]
}

// NewOrder returns the order of direction dir.
func NewOrder[T nd.Number](dir nd.Direction) Order[T] {
	return Order[T]{k: newKeyer[T](dir)}
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, together
// with, or after b.
func (o Order[T]) Compare(a, b T) int {
	return cmp.Compare(o.k.key(a), o.k.key(b))
}

// FirstUnsorted returns the first position i with run[i] ordered before
// run[i-1], or -1 if run is sorted.
func (o Order[T]) FirstUnsorted(run []T) int {
	for i := 1; i < len(run); i++ {
		if o.k.key(run[i]) < o.k.key(run[i-1]) {
			return i
		}
	}
	return -1
}

// IsSorted reports whether run is ordered in direction dir.
func IsSorted[T nd.Number](run []T, dir nd.Direction) bool {
	return NewOrder[T](dir).FirstUnsorted(run) < 0
}
