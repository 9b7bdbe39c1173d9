// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package sort

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/go-ndsort/ndsort/nd"
)

type keyKind uint8

const (
	kindUnsigned keyKind = iota
	kindSigned
	kindFloat32
	kindFloat64
)

// keyer maps elements of T to radix keys of a fixed bit width whose unsigned
// order is the sort order for one direction.
type keyer[T nd.Number] struct {
	kind keyKind
	bits uint
	mask uint64
	desc bool
}

func newKeyer[T nd.Number](dir nd.Direction) keyer[T] {
	var zero T
	k := keyer[T]{
		bits: uint(unsafe.Sizeof(zero)) * 8,
		desc: !dir.IsAscending(),
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		k.kind = kindFloat32
	case reflect.Float64:
		k.kind = kindFloat64
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		k.kind = kindSigned
	default:
		k.kind = kindUnsigned
	}
	k.mask = math.MaxUint64 >> (64 - k.bits)
	return k
}

// float32Key returns a key for f: -0 maps to +0 and every NaN to the largest
// key.
func float32Key(f float32) uint64 {
	if f == 0 {
		return 1 << 31
	}
	if math.IsNaN(float64(f)) {
		return math.MaxUint32
	}
	b := math.Float32bits(f)
	if b>>31 != 0 {
		return uint64(^b)
	}
	return uint64(b | 1<<31)
}

func float64Key(f float64) uint64 {
	if f == 0 {
		return 1 << 63
	}
	if math.IsNaN(f) {
		return math.MaxUint64
	}
	b := math.Float64bits(f)
	if b>>63 != 0 {
		return ^b
	}
	return b | 1<<63
}

// key returns the radix key of v.
func (k keyer[T]) key(v T) uint64 {
	var u uint64
	switch k.kind {
	case kindFloat32:
		u = float32Key(float32(v))
	case kindFloat64:
		u = float64Key(float64(v))
	case kindSigned:
		u = (uint64(int64(v)) ^ 1<<(k.bits-1)) & k.mask
	default:
		u = uint64(v)
	}
	if k.desc {
		u = ^u & k.mask
	}
	return u
}

// fill writes the key of every element of src into dst and reports whether
// the keys are already non-decreasing.
func (k keyer[T]) fill(dst []uint64, src []T) (sorted bool) {
	switch k.kind {
	case kindFloat32:
		for i, v := range src {
			dst[i] = float32Key(float32(v))
		}
	case kindFloat64:
		for i, v := range src {
			dst[i] = float64Key(float64(v))
		}
	case kindSigned:
		flip := uint64(1) << (k.bits - 1)
		for i, v := range src {
			dst[i] = (uint64(int64(v)) ^ flip) & k.mask
		}
	default:
		for i, v := range src {
			dst[i] = uint64(v)
		}
	}

	if k.desc {
		for i := range dst {
			dst[i] = ^dst[i] & k.mask
		}
	}

	for i := 1; i < len(dst); i++ {
		if dst[i] < dst[i-1] {
			return false
		}
	}
	return true
}
