// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/go-ndsort/ndsort/nd"
)

const exampleDoc = `
dtype: float32
dims: [4, 2]
data: [3, 1, 4, 1, 2, 2, 2, 2]
`

func TestSortDocumentIndexMode(t *testing.T) {
	doc, err := parseDocument([]byte(exampleDoc))
	require.NoError(t, err)

	res, err := sortDocument(doc, sortOptions{mode: modeIndex, verify: true})
	require.NoError(t, err)

	r, ok := res.(*result[float32])
	require.True(t, ok, "result type %T", res)
	assert.Equal(t, []float32{1, 1, 3, 4, 2, 2, 2, 2}, r.Data)
	assert.Equal(t, []nd.Index{1, 3, 0, 2, 0, 1, 2, 3}, r.Indices)
	assert.Equal(t, []int{4, 2}, r.Dims)
}

func TestSortDocumentKeyMode(t *testing.T) {
	doc, err := parseDocument([]byte(`{"dtype": "int32", "data": [5, 3, 5, 1], "values": ["a", "b", "c", "d"]}`))
	require.NoError(t, err)

	res, err := sortDocument(doc, sortOptions{mode: modeKey, verify: true})
	require.NoError(t, err)

	r := res.(*result[int32])
	assert.Equal(t, []int32{1, 3, 5, 5}, r.Data)
	assert.Equal(t, []any{"d", "b", "a", "c"}, r.Values)

	res, err = sortDocument(doc, sortOptions{mode: modeKey, descending: true})
	require.NoError(t, err)
	r = res.(*result[int32])
	assert.Equal(t, []int32{5, 5, 3, 1}, r.Data)
	assert.Equal(t, []any{"a", "c", "b", "d"}, r.Values)
}

func TestSortDocumentStrided(t *testing.T) {
	// Two runs of three, stored with a pitch of four.
	doc, err := parseDocument([]byte(`
dtype: int8
dims: [3, 2]
strides: [1, 4, 8, 8]
data: [-1, 7, -128, 0, 127, 3, 3, 0]
`))
	require.NoError(t, err)

	res, err := sortDocument(doc, sortOptions{mode: modeValues, descending: true, verify: true})
	require.NoError(t, err)
	assert.Equal(t, []int8{7, -1, -128, 127, 3, 3}, res.(*result[int8]).Data)
}

func TestSortDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts sortOptions
		want string
	}{
		{"no dtype", `data: [1, 2]`, sortOptions{mode: modeValues}, "no dtype"},
		{"bad dtype", `{dtype: complex64, data: [1]}`, sortOptions{mode: modeValues}, "unsupported dtype"},
		{"too many dims", `{dtype: int32, dims: [1, 1, 1, 1, 1], data: [1]}`, sortOptions{mode: modeValues}, "at most 4"},
		{"short strides", `{dtype: int32, dims: [2], strides: [1], data: [1, 2]}`, sortOptions{mode: modeValues}, "strides"},
		{"out of range", `{dtype: int8, data: [1, 300]}`, sortOptions{mode: modeValues}, "data[1]"},
		{"negative unsigned", `{dtype: uint16, data: [-1]}`, sortOptions{mode: modeValues}, "data[0]"},
		{"broadcast outer dim", `{dtype: int32, dims: [1, 1000000000], strides: [1, 0, 0, 0], data: [1]}`, sortOptions{mode: modeValues}, "broadcast"},
		{"short buffer", `{dtype: float64, dims: [2, 2], data: [1, 2, 3]}`, sortOptions{mode: modeValues}, "buffer holds 3"},
		{"missing values", `{dtype: int32, data: [1, 2]}`, sortOptions{mode: modeKey}, "needs 2 values"},
		{"nested values", `{dtype: int32, data: [1], values: [[1]]}`, sortOptions{mode: modeKey}, "not a scalar"},
		{"bad mode", `{dtype: int32, data: [1]}`, sortOptions{mode: "shuffle"}, "unknown mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseDocument([]byte(tt.doc))
			if err == nil {
				_, err = sortDocument(doc, tt.opts)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadDocumentZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "array.yaml.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(exampleDoc))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	doc, err := readDocument(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "float32", doc.DType)
	assert.Len(t, doc.Data, 8)
}

func TestSortCommand(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newCLI()
	cmd.SetArgs([]string{"sort", "--mode", "index", "--descending", "--verify", "--output", "json"})
	cmd.SetIn(strings.NewReader(exampleDoc))
	cmd.SetOut(&stdout)
	require.NoError(t, cmd.Execute())

	var got struct {
		Data    []float32  `json:"data"`
		Indices []nd.Index `json:"indices"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, []float32{4, 3, 1, 1, 2, 2, 2, 2}, got.Data)
	assert.Equal(t, []nd.Index{2, 0, 1, 3, 0, 1, 2, 3}, got.Indices)
}

func TestSortCommandYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "array.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleDoc), 0o644))

	var stdout bytes.Buffer
	cmd := newCLI()
	cmd.SetArgs([]string{"sort", path})
	cmd.SetOut(&stdout)
	require.NoError(t, cmd.Execute())

	var got struct {
		DType string    `json:"dtype"`
		Data  []float32 `json:"data"`
	}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "float32", got.DType)
	assert.Equal(t, []float32{1, 1, 3, 4, 2, 2, 2, 2}, got.Data)
}

func TestBench(t *testing.T) {
	results, err := runBench(benchOptions{
		dims:       []int{50, 4, 2},
		dtypes:     []string{"int16", "float64"},
		modes:      modes,
		iterations: 2,
		threads:    2,
		seed:       3,
	})
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, r := range results {
		assert.Equal(t, nd.Dims{50, 4, 2, 1}, r.dims)
		assert.Equal(t, 2, r.threads)
	}

	var out bytes.Buffer
	writeBenchTable(&out, results)
	assert.Contains(t, out.String(), "float64")
	assert.Contains(t, out.String(), "50x4x2x1")

	_, err = runBench(benchOptions{dims: []int{8}, dtypes: []string{"bool"}, modes: modes, iterations: 1})
	assert.ErrorContains(t, err, "unsupported dtype")
	_, err = runBench(benchOptions{dims: []int{0}, dtypes: dtypes, modes: modes, iterations: 1})
	assert.ErrorContains(t, err, "positive")
}

func TestEnvCommand(t *testing.T) {
	t.Setenv("NDSORT_NUM_THREADS", "3")

	var stdout bytes.Buffer
	cmd := newCLI()
	cmd.SetArgs([]string{"env"})
	cmd.SetOut(&stdout)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "NDSORT_NUM_THREADS")
	assert.Contains(t, stdout.String(), "NDSORT_DEBUG")
}
