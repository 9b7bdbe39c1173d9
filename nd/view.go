// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import "fmt"

// Dims holds the logical extent of each dimension. Dims[0] is the sort
// dimension.
type Dims [MaxDims]int

// Strides holds the number of elements to step over to advance by one along
// each dimension.
type Strides [MaxDims]int

// Elements returns the total number of logical elements.
func (d Dims) Elements() int {
	return d[0] * d[1] * d[2] * d[3]
}

// Batches returns the number of independent runs along dimension 0, that is
// the product of the outer extents.
func (d Dims) Batches() int {
	return d[1] * d[2] * d[3]
}

// Contiguous returns the dense column-major strides for d.
func (d Dims) Contiguous() Strides {
	var s Strides
	s[0] = 1
	for i := 1; i < MaxDims; i++ {
		s[i] = s[i-1] * d[i-1]
	}
	return s
}

// View is a strided, non-owning descriptor of a dense array of up to four
// dimensions.
type View[T any] struct {
	Data    []T
	Dims    Dims
	Strides Strides
}

// NewView returns a contiguous view of data with the given extents. Missing
// trailing extents default to 1; with no extents the view is one run holding
// all of data. NewView panics if more than MaxDims extents are given.
func NewView[T any](data []T, dims ...int) View[T] {
	if len(dims) > MaxDims {
		panic(fmt.Sprintf("nd.NewView: %d dimensions given, at most %d supported", len(dims), MaxDims))
	}
	d := Dims{1, 1, 1, 1}
	if len(dims) == 0 {
		d[0] = len(data)
	}
	copy(d[:], dims)
	return View[T]{Data: data, Dims: d, Strides: d.Contiguous()}
}

// NewStridedView returns a view with explicit extents and strides.
func NewStridedView[T any](data []T, dims Dims, strides Strides) View[T] {
	return View[T]{Data: data, Dims: dims, Strides: strides}
}

// Offset returns the linear offset of element (0, y, z, w). No bounds
// checking is performed.
func (v View[T]) Offset(y, z, w int) int {
	return w*v.Strides[3] + z*v.Strides[2] + y*v.Strides[1]
}

// Run returns the Dims[0] contiguous elements that start at element
// (0, y, z, w). The run aliases Data.
func (v View[T]) Run(y, z, w int) []T {
	off := v.Offset(y, z, w)
	return v.Data[off : off+v.Dims[0] : off+v.Dims[0]]
}

// RunAt returns the run that starts at a precomputed offset.
func (v View[T]) RunAt(off int) []T {
	return v.Data[off : off+v.Dims[0] : off+v.Dims[0]]
}

// At returns element (x, y, z, w).
func (v View[T]) At(x, y, z, w int) T {
	return v.Data[x*v.Strides[0]+v.Offset(y, z, w)]
}

// Check validates the view: positive extents, a contiguous sort dimension,
// non-negative outer strides, and a buffer large enough for the last run.
func (v View[T]) Check() error {
	for i, d := range v.Dims {
		if d <= 0 {
			return &PreconditionError{Op: "check", Reason: fmt.Sprintf("dimension %d has non-positive extent %d", i, d)}
		}
	}
	if v.Strides[0] != 1 {
		return &PreconditionError{Op: "check", Reason: fmt.Sprintf("sort dimension stride is %d, want 1", v.Strides[0])}
	}
	for i := 1; i < MaxDims; i++ {
		if v.Strides[i] < 0 {
			return &PreconditionError{Op: "check", Reason: fmt.Sprintf("dimension %d has negative stride %d", i, v.Strides[i])}
		}
	}
	last := v.Offset(v.Dims[1]-1, v.Dims[2]-1, v.Dims[3]-1) + v.Dims[0]
	if last > len(v.Data) {
		return &PreconditionError{Op: "check", Reason: fmt.Sprintf("buffer holds %d elements, view needs %d", len(v.Data), last)}
	}
	return nil
}

// PreconditionError reports a violated caller precondition.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("ndsort: %s: %s", e.Op, e.Reason)
}
