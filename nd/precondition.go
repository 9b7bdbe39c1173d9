// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import "fmt"

// CheckContiguous returns a *PreconditionError if the sort dimension of
// strides is not contiguous.
func CheckContiguous(op string, strides Strides) error {
	if strides[0] != 1 {
		return &PreconditionError{Op: op, Reason: fmt.Sprintf("sort dimension stride is %d, want 1", strides[0])}
	}
	return nil
}

// CheckSameDims returns a *PreconditionError if got differs from want.
func CheckSameDims(op string, want, got Dims) error {
	if want != got {
		return &PreconditionError{Op: op, Reason: fmt.Sprintf("dims %v do not match %v", got, want)}
	}
	return nil
}

// MustHold panics with the first non-nil error. It is meant to be guarded by
// DebugChecks so release builds compile the checks away.
func MustHold(errs ...error) {
	for _, err := range errs {
		if err != nil {
			panic(err)
		}
	}
}
