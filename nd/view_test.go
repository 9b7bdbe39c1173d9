// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import (
	"errors"
	"testing"
)

func TestContiguousStrides(t *testing.T) {
	d := Dims{4, 3, 2, 5}
	got := d.Contiguous()
	want := Strides{1, 4, 12, 24}
	if got != want {
		t.Errorf("Contiguous() = %v, want %v", got, want)
	}
	if d.Elements() != 120 {
		t.Errorf("Elements() = %d, want 120", d.Elements())
	}
	if d.Batches() != 30 {
		t.Errorf("Batches() = %d, want 30", d.Batches())
	}
}

func TestNewViewDefaults(t *testing.T) {
	data := make([]float32, 6)

	v := NewView(data)
	if v.Dims != (Dims{6, 1, 1, 1}) {
		t.Errorf("NewView(data).Dims = %v, want [6 1 1 1]", v.Dims)
	}

	v = NewView(data, 3, 2)
	if v.Dims != (Dims{3, 2, 1, 1}) {
		t.Errorf("NewView(data, 3, 2).Dims = %v, want [3 2 1 1]", v.Dims)
	}
	if v.Strides != (Strides{1, 3, 6, 6}) {
		t.Errorf("NewView(data, 3, 2).Strides = %v, want [1 3 6 6]", v.Strides)
	}
}

func TestNewViewTooManyDims(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewView with 5 dims should panic")
		}
	}()
	NewView(make([]int32, 32), 2, 2, 2, 2, 2)
}

func TestOffsetAndRun(t *testing.T) {
	data := make([]int32, 24)
	for i := range data {
		data[i] = int32(i)
	}
	v := NewView(data, 2, 3, 4)

	if off := v.Offset(1, 2, 0); off != 1*2+2*6 {
		t.Errorf("Offset(1,2,0) = %d, want 14", off)
	}
	run := v.Run(2, 1, 0)
	if len(run) != 2 || run[0] != 10 || run[1] != 11 {
		t.Errorf("Run(2,1,0) = %v, want [10 11]", run)
	}
	if cap(run) != 2 {
		t.Errorf("cap(Run) = %d, want 2", cap(run))
	}
	if got := v.At(1, 2, 3, 0); got != 1+2*2+3*6 {
		t.Errorf("At(1,2,3,0) = %d, want 23", got)
	}
}

func TestPaddedStridedView(t *testing.T) {
	// Two runs of length 3 stored with a pitch of 5.
	data := []int{3, 1, 2, -1, -1, 9, 8, 7, -1, -1}
	v := NewStridedView(data, Dims{3, 2, 1, 1}, Strides{1, 5, 10, 10})
	if err := v.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	if run := v.Run(1, 0, 0); run[0] != 9 || run[2] != 7 {
		t.Errorf("Run(1,0,0) = %v, want [9 8 7]", run)
	}
}

func TestCheck(t *testing.T) {
	data := make([]float64, 12)
	tests := []struct {
		name string
		view View[float64]
		ok   bool
	}{
		{"contiguous", NewView(data, 3, 4), true},
		{"zero extent", NewStridedView(data, Dims{0, 1, 1, 1}, Strides{1, 1, 1, 1}), false},
		{"strided sort dim", NewStridedView(data, Dims{3, 2, 1, 1}, Strides{2, 6, 12, 12}), false},
		{"negative stride", NewStridedView(data, Dims{3, 2, 1, 1}, Strides{1, -3, 6, 6}), false},
		{"short buffer", NewView(data[:11], 3, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.view.Check()
			if tt.ok && err != nil {
				t.Errorf("Check() = %v, want nil", err)
			}
			if !tt.ok {
				var pe *PreconditionError
				if !errors.As(err, &pe) {
					t.Errorf("Check() = %v, want *PreconditionError", err)
				}
			}
		})
	}
}

func TestDirection(t *testing.T) {
	if FromAscending(true) != Ascending || FromAscending(false) != Descending {
		t.Error("FromAscending mapping is wrong")
	}
	for _, s := range []string{"asc", "ASCENDING", " asc "} {
		if d, err := ParseDirection(s); err != nil || d != Ascending {
			t.Errorf("ParseDirection(%q) = %v, %v", s, d, err)
		}
	}
	if d, err := ParseDirection("desc"); err != nil || d != Descending {
		t.Errorf("ParseDirection(desc) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
	if Descending.String() != "desc" || Ascending.String() != "asc" {
		t.Errorf("String() = %s/%s", Ascending, Descending)
	}
}

func TestPreconditionHelpers(t *testing.T) {
	if err := CheckContiguous("sort", Strides{1, 4, 4, 4}); err != nil {
		t.Errorf("CheckContiguous = %v", err)
	}
	if err := CheckContiguous("sort", Strides{2, 4, 4, 4}); err == nil {
		t.Error("CheckContiguous should fail for stride 2")
	}
	if err := CheckSameDims("sort", Dims{4, 2, 1, 1}, Dims{4, 1, 2, 1}); err == nil {
		t.Error("CheckSameDims should fail for permuted dims")
	}

	defer func() {
		r := recover()
		if _, ok := r.(*PreconditionError); !ok {
			t.Errorf("MustHold panicked with %v, want *PreconditionError", r)
		}
	}()
	MustHold(nil, CheckContiguous("sort", Strides{3, 1, 1, 1}))
}
