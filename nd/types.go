// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import "golang.org/x/exp/constraints"

// Number is the constraint for element types with a natural total order that
// the sort engine can sort.
type Number interface {
	constraints.Integer | constraints.Float
}

// Index is the element type of permutation index arrays.
type Index = uint32

// MaxDims is the number of logical dimensions every view carries.
const MaxDims = 4
