// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package verify checks the results of batched sorts: that every run is in
// order, that index arrays are permutations, that values and keys moved
// together, and that ties kept their original order. Runs are checked
// concurrently and the first violation found is returned.
package verify

import (
	"context"
	"fmt"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/go-ndsort/ndsort/nd"
	"github.com/go-ndsort/ndsort/nd/contrib/sort"
)

// Violation describes the first position at which a check failed.
type Violation struct {
	Check   string
	Y, Z, W int // outer coordinate of the run
	Pos     int // position along dimension 0
	Reason  string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("verify %s: run (%d,%d,%d) position %d: %s", v.Check, v.Y, v.Z, v.W, v.Pos, v.Reason)
}

// forEachRun calls fn for every run of the views described by strides, in
// parallel, and returns the first error.
func forEachRun(dims nd.Dims, strides []nd.Strides, fn func(y, z, w int, offs []int) error) error {
	it := nd.NewBatchIterator(dims, strides...)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for b := range it.Len() {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			y, z, w := it.Coord(b)
			return fn(y, z, w, it.Offsets(b, nil))
		})
	}
	return g.Wait()
}

// Sorted checks that every run of v is ordered in direction dir.
func Sorted[T nd.Number](v nd.View[T], dir nd.Direction) error {
	order := sort.NewOrder[T](dir)
	return forEachRun(v.Dims, []nd.Strides{v.Strides}, func(y, z, w int, offs []int) error {
		run := v.RunAt(offs[0])
		if pos := order.FirstUnsorted(run); pos >= 0 {
			return &Violation{
				Check: "sorted", Y: y, Z: z, W: w, Pos: pos,
				Reason: fmt.Sprintf("%v follows %v in %s order", run[pos], run[pos-1], dir),
			}
		}
		return nil
	})
}

// Permutation checks that every run of idx holds each of 0..Dims[0]-1 exactly
// once.
func Permutation(idx nd.View[nd.Index]) error {
	n := idx.Dims[0]
	return forEachRun(idx.Dims, []nd.Strides{idx.Strides}, func(y, z, w int, offs []int) error {
		seen := roaring.New()
		for i, p := range idx.RunAt(offs[0]) {
			if int(p) >= n {
				return &Violation{Check: "permutation", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("index %d out of range [0,%d)", p, n)}
			}
			if !seen.CheckedAdd(p) {
				return &Violation{Check: "permutation", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("index %d repeated", p)}
			}
		}
		return nil
	})
}

// Gathered checks that out[i] == in[idx[i]] within every run. NaNs match
// NaNs.
func Gathered[T nd.Number](out nd.View[T], idx nd.View[nd.Index], in nd.View[T]) error {
	return forEachRun(in.Dims, []nd.Strides{out.Strides, idx.Strides, in.Strides}, func(y, z, w int, offs []int) error {
		o, ix, src := out.RunAt(offs[0]), idx.RunAt(offs[1]), in.RunAt(offs[2])
		for i, p := range ix {
			if int(p) >= len(src) {
				return &Violation{Check: "gathered", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("index %d out of range [0,%d)", p, len(src))}
			}
			if !same(o[i], src[p]) {
				return &Violation{Check: "gathered", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("value %v, input[%d] = %v", o[i], p, src[p])}
			}
		}
		return nil
	})
}

// StableTies checks that within every run of out, equal neighbours carry
// increasing original positions in idx.
func StableTies[T nd.Number](out nd.View[T], idx nd.View[nd.Index]) error {
	order := sort.NewOrder[T](nd.Ascending)
	return forEachRun(out.Dims, []nd.Strides{out.Strides, idx.Strides}, func(y, z, w int, offs []int) error {
		o, ix := out.RunAt(offs[0]), idx.RunAt(offs[1])
		for i := 1; i < len(o); i++ {
			if order.Compare(o[i-1], o[i]) == 0 && ix[i-1] >= ix[i] {
				return &Violation{Check: "stable", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("tie %v moved from %d before %d", o[i], ix[i-1], ix[i])}
			}
		}
		return nil
	})
}

// ByKey checks a key-by-value sort: every run of okey must be the stable
// sort of the matching run of ikey, and oval must hold the values of ival
// moved along with their keys.
func ByKey[K nd.Number, V comparable](okey nd.View[K], oval nd.View[V], ikey nd.View[K], ival nd.View[V], dir nd.Direction) error {
	n := ikey.Dims[0]
	strides := []nd.Strides{okey.Strides, oval.Strides, ikey.Strides, ival.Strides}
	return forEachRun(ikey.Dims, strides, func(y, z, w int, offs []int) error {
		ok, ov := okey.RunAt(offs[0]), oval.RunAt(offs[1])
		ik, iv := ikey.RunAt(offs[2]), ival.RunAt(offs[3])

		keys := append([]K(nil), ik...)
		perm := make([]nd.Index, n)
		sort.SortWithIndices(keys, perm, dir)
		for i, p := range perm {
			if !same(ok[i], ik[p]) {
				return &Violation{Check: "by key", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("key %v, want input key[%d] = %v", ok[i], p, ik[p])}
			}
			if ov[i] != iv[p] {
				return &Violation{Check: "by key", Y: y, Z: z, W: w, Pos: i, Reason: fmt.Sprintf("value %v, want input value[%d] = %v", ov[i], p, iv[p])}
			}
		}
		return nil
	})
}

func same[T nd.Number](a, b T) bool {
	return a == b || (a != a && b != b)
}
