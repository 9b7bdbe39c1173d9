// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package nd describes dense arrays of up to four dimensions stored in flat
// buffers, and enumerates the independent one-dimensional runs along the
// leading dimension that the sort engine works on.
//
// A View never owns its buffer. Dimension 0 is the sort dimension and must be
// contiguous (stride 1); dimensions 1, 2 and 3 are the outer (batch)
// dimensions and may use arbitrary strides.
//
// # Layout
//
// Element (x, y, z, w) of a view lives at
//
//	Data[x*Strides[0] + y*Strides[1] + z*Strides[2] + w*Strides[3]]
//
// and NewView builds the column-major layout where Strides[0] == 1 and each
// following stride is the product of the preceding extents.
//
// # Preconditions
//
// The sort engine does not validate views in release builds. Building with
// the ndsortdebug tag turns DebugChecks on, and the sort entry points then
// panic with a *PreconditionError when the sort dimension is not contiguous
// or when paired views disagree on their extents. View.Check is available to
// callers that want to validate explicitly.
package nd
