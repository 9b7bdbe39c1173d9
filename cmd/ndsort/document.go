// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"sigs.k8s.io/yaml"

	"github.com/go-ndsort/ndsort/nd"
)

// document is an array as read from YAML or JSON.
type document struct {
	DType   string        `json:"dtype"`
	Dims    []int         `json:"dims"`
	Strides []int         `json:"strides,omitempty"`
	Data    []json.Number `json:"data"`
	Values  []any         `json:"values,omitempty"`
}

// result is a sorted array as written back out. Outputs are always
// contiguous.
type result[T nd.Number] struct {
	DType   string     `json:"dtype"`
	Dims    []int      `json:"dims"`
	Data    []T        `json:"data"`
	Indices []nd.Index `json:"indices,omitempty"`
	Values  []any      `json:"values,omitempty"`
}

// readDocument reads a document from name, or from stdin when name is empty
// or "-". Files ending in .zst are zstd-decompressed.
func readDocument(name string, stdin io.Reader) (*document, error) {
	var r io.Reader = stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName(name), err)
	}
	return parseDocument(raw)
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return name
}

func useNumber(d *json.Decoder) *json.Decoder {
	d.UseNumber()
	return d
}

// parseDocument decodes YAML or JSON (JSON being a subset of YAML).
func parseDocument(raw []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc, useNumber); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.DType == "" {
		return nil, errors.New("document has no dtype")
	}
	if len(doc.Dims) == 0 {
		doc.Dims = []int{len(doc.Data)}
	}
	if len(doc.Dims) > nd.MaxDims {
		return nil, fmt.Errorf("document has %d dims, at most %d supported", len(doc.Dims), nd.MaxDims)
	}
	if doc.Strides != nil && len(doc.Strides) != nd.MaxDims {
		return nil, fmt.Errorf("document has %d strides, want %d", len(doc.Strides), nd.MaxDims)
	}
	for i, v := range doc.Values {
		switch v.(type) {
		case nil, bool, string, json.Number:
		default:
			return nil, fmt.Errorf("values[%d]: %T is not a scalar", i, v)
		}
	}
	return &doc, nil
}

// view builds the input view of the document for element type T and checks
// it.
func view[T nd.Number](doc *document) (nd.View[T], error) {
	data, err := parseNumbers[T](doc.Data)
	if err != nil {
		return nd.View[T]{}, err
	}
	v := nd.NewView(data, doc.Dims...)
	if doc.Strides != nil {
		copy(v.Strides[:], doc.Strides)
	}
	if err := v.Check(); err != nil {
		return nd.View[T]{}, err
	}
	// Outputs are dense, so every outer extent needs its own data.
	for i := 1; i < nd.MaxDims; i++ {
		if v.Dims[i] > 1 && v.Strides[i] == 0 {
			return nd.View[T]{}, fmt.Errorf("strides[%d] is 0 for extent %d: broadcast input is not supported", i, v.Dims[i])
		}
	}
	return v, nil
}

// parseNumbers converts document numbers to T, rejecting values that do not
// fit.
func parseNumbers[T nd.Number](nums []json.Number) ([]T, error) {
	var probe T = 1
	isFloat := probe/2 != 0
	var zero T
	bits := sizeBits(zero)
	signed := !isFloat && zero-probe < 0

	out := make([]T, len(nums))
	for i, num := range nums {
		s := num.String()
		switch {
		case isFloat:
			f, err := strconv.ParseFloat(s, bits)
			if err != nil {
				return nil, fmt.Errorf("data[%d]: %w", i, err)
			}
			out[i] = T(f)
		case signed:
			n, err := strconv.ParseInt(s, 10, bits)
			if err != nil {
				return nil, fmt.Errorf("data[%d]: %w", i, err)
			}
			out[i] = T(n)
		default:
			n, err := strconv.ParseUint(s, 10, bits)
			if err != nil {
				return nil, fmt.Errorf("data[%d]: %w", i, err)
			}
			out[i] = T(n)
		}
	}
	return out, nil
}

// dtypes lists the element types documents may use.
var dtypes = []string{"int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "float32", "float64"}

func sizeBits(v any) int {
	switch v.(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32, float32:
		return 32
	default:
		return 64
	}
}
