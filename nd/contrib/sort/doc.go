// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package sort sorts single contiguous runs: the per-slice engine behind the
// batched entry points in package batchsort.
//
// Three modes are provided:
//   - Sort orders a run in place.
//   - SortWithIndices orders a run in place and records, for every output
//     position, the position in the run the value came from.
//   - SortByKey orders a run of keys in place and moves a parallel run of
//     values along with it. Values are never compared.
//
// # Ordering
//
// Every mode is stable in both directions: elements that compare equal keep
// their original relative order. Descending is the reverse of the ascending
// order of distinct values, not the reverse of an ascending result, so ties
// still appear in original order.
//
// Floating point values follow the natural order with two additions that
// make it total: -0 and +0 are equal, and every NaN is equal to every other
// NaN and greater than +Inf. NaNs therefore come last in ascending order and
// first in descending order.
//
// # Algorithm
//
// Every element is mapped to an unsigned radix key that preserves the order
// above (descending complements the key). Short runs are ordered with
// insertion sort on the keys; longer runs use an LSD radix sort with 8-bit
// digits that skips passes in which every key shares the same digit. Both are
// stable, and both carry a permutation that is finally applied to the run and
// to any paired values.
//
// # Example Usage
//
//	run := []float32{3, 1, 4, 1}
//	idx := make([]uint32, len(run))
//	sort.SortWithIndices(run, idx, nd.Ascending)
//	// run = [1 1 3 4], idx = [1 3 0 2]
package sort
