// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package batchsort sorts arrays of up to four dimensions along dimension 0,
// independently for every combination of the outer dimensions.
//
// Three entry points mirror the three modes of package sort:
//
//	batchsort.Sort(out, in, nd.Ascending)               // values
//	batchsort.SortIndex(out, idx, in, nd.Descending)    // values + permutation
//	batchsort.SortByKey(okey, oval, ikey, ival, dir)    // keys, values follow
//
// Outputs are never allocated here: every output view must already have the
// extents of its input. Each run of the input is copied to the matching run of
// the output and sorted there, so passing the same view as input and output
// sorts in place. Outer dimensions may use any strides; dimension 0 must be
// contiguous.
//
// Runs are independent and are spread over a worker pool; every call blocks
// until all runs are sorted. Ties keep their original order in every mode
// and both directions.
package batchsort
