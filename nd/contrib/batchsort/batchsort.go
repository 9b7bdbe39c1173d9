// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package batchsort

import (
	"context"
	"log/slog"

	"github.com/go-ndsort/ndsort/nd"
	"github.com/go-ndsort/ndsort/nd/contrib/sort"
)

// Sort writes to out the runs of in, each sorted along dimension 0 in
// direction dir. out must have the extents of in and may be in itself.
func Sort[T nd.Number](out, in nd.View[T], dir nd.Direction, opts ...Option) {
	if nd.DebugChecks {
		nd.MustHold(
			nd.CheckContiguous("sort", in.Strides),
			nd.CheckContiguous("sort", out.Strides),
			nd.CheckSameDims("sort", in.Dims, out.Dims),
		)
	}

	o := resolve(opts)
	it := nd.NewBatchIterator(in.Dims, out.Strides, in.Strides)
	o.trace("sort", in.Dims, dir, it.Len())

	n := in.Dims[0]
	o.pool.ParallelFor(it.Len(), func(start, end int) {
		s := sort.NewSorter[T](n, dir)
		var offs []int
		for b := start; b < end; b++ {
			offs = it.Offsets(b, offs)
			run := out.RunAt(offs[0])
			copy(run, in.RunAt(offs[1]))
			s.Sort(run)
		}
	})
}

// SortIndex is Sort that also writes to idx, for every output position, the
// position along dimension 0 that the value held in in. idx must have the
// extents of in.
func SortIndex[T nd.Number](out nd.View[T], idx nd.View[nd.Index], in nd.View[T], dir nd.Direction, opts ...Option) {
	if nd.DebugChecks {
		nd.MustHold(
			nd.CheckContiguous("sort index", in.Strides),
			nd.CheckContiguous("sort index", out.Strides),
			nd.CheckContiguous("sort index", idx.Strides),
			nd.CheckSameDims("sort index", in.Dims, out.Dims),
			nd.CheckSameDims("sort index", in.Dims, idx.Dims),
		)
	}

	o := resolve(opts)
	it := nd.NewBatchIterator(in.Dims, out.Strides, idx.Strides, in.Strides)
	o.trace("sort index", in.Dims, dir, it.Len())

	n := in.Dims[0]
	o.pool.ParallelFor(it.Len(), func(start, end int) {
		s := sort.NewSorter[T](n, dir)
		var offs []int
		for b := start; b < end; b++ {
			offs = it.Offsets(b, offs)
			run := out.RunAt(offs[0])
			copy(run, in.RunAt(offs[2]))
			s.SortWithIndices(run, idx.RunAt(offs[1]))
		}
	})
}

// SortByKey writes to okey the runs of ikey sorted along dimension 0 in
// direction dir, and to oval the runs of ival reordered the same way. Values
// are never compared. The key and value views must share their extents;
// their element types and strides are independent.
func SortByKey[K nd.Number, V any](okey nd.View[K], oval nd.View[V], ikey nd.View[K], ival nd.View[V], dir nd.Direction, opts ...Option) {
	if nd.DebugChecks {
		nd.MustHold(
			nd.CheckContiguous("sort by key", ikey.Strides),
			nd.CheckContiguous("sort by key", ival.Strides),
			nd.CheckContiguous("sort by key", okey.Strides),
			nd.CheckContiguous("sort by key", oval.Strides),
			nd.CheckSameDims("sort by key", ikey.Dims, ival.Dims),
			nd.CheckSameDims("sort by key", ikey.Dims, okey.Dims),
			nd.CheckSameDims("sort by key", ikey.Dims, oval.Dims),
		)
	}

	o := resolve(opts)
	it := nd.NewBatchIterator(ikey.Dims, okey.Strides, oval.Strides, ikey.Strides, ival.Strides)
	o.trace("sort by key", ikey.Dims, dir, it.Len())

	n := ikey.Dims[0]
	o.pool.ParallelFor(it.Len(), func(start, end int) {
		s := sort.NewSorter[K](n, dir)
		tmp := make([]V, n)
		var offs []int
		for b := start; b < end; b++ {
			offs = it.Offsets(b, offs)
			keys := okey.RunAt(offs[0])
			vals := oval.RunAt(offs[1])
			copy(keys, ikey.RunAt(offs[2]))
			copy(vals, ival.RunAt(offs[3]))
			tmp = sort.SortByKeyWith(s, keys, vals, tmp)
		}
	})
}

func (o options) trace(op string, dims nd.Dims, dir nd.Direction, batches int) {
	if !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.logger.Debug("batched sort",
		"op", op,
		"dims", dims,
		"dir", dir.String(),
		"batches", batches,
		"workers", o.pool.NumWorkers(),
	)
}
