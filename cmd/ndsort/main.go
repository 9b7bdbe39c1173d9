// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Command ndsort sorts array documents along their leading dimension and
// benchmarks the batched sort engine.
//
// Usage:
//
//	ndsort sort input.yaml                      # sorted values
//	ndsort sort --mode index --descending a.json
//	ndsort sort --mode key --verify a.yaml.zst  # keys with values
//	ndsort bench --dims 1024,256 --dtype float32 --mode index
//	ndsort env
//
// An array document holds the element type, up to four extents, optional
// strides and the flat data buffer:
//
//	dtype: float32
//	dims: [4, 2]
//	data: [3, 1, 4, 1, 2, 2, 2, 2]
//
// In key mode, values lists one arbitrary scalar per element of data; they
// are moved along with their keys.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
