// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/go-ndsort/ndsort/nd"
	"github.com/go-ndsort/ndsort/nd/contrib/batchsort"
	"github.com/go-ndsort/ndsort/nd/contrib/verify"
)

const (
	modeValues = "values"
	modeIndex  = "index"
	modeKey    = "key"
)

var modes = []string{modeValues, modeIndex, modeKey}

type sortOptions struct {
	mode       string
	descending bool
	verify     bool
	output     string
}

func newSortCmd() *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "sort [FILE]",
		Short: "Sort an array document along its leading dimension",
		Long: `Sort reads an array document (YAML or JSON, optionally zstd-compressed
with a .zst suffix) from FILE or stdin, sorts every run along dimension 0
and writes the result to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			doc, err := readDocument(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			res, err := sortDocument(doc, opts)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", modeValues, "Sort mode ("+strings.Join(modes, ", ")+")")
	cmd.Flags().BoolVarP(&opts.descending, "descending", "d", false, "Sort in descending order")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check the result before writing it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format (yaml, json)")
	return cmd
}

func sortDocument(doc *document, opts sortOptions) (any, error) {
	switch doc.DType {
	case "int8":
		return sortTyped[int8](doc, opts)
	case "int16":
		return sortTyped[int16](doc, opts)
	case "int32":
		return sortTyped[int32](doc, opts)
	case "int64":
		return sortTyped[int64](doc, opts)
	case "uint8":
		return sortTyped[uint8](doc, opts)
	case "uint16":
		return sortTyped[uint16](doc, opts)
	case "uint32":
		return sortTyped[uint32](doc, opts)
	case "uint64":
		return sortTyped[uint64](doc, opts)
	case "float32":
		return sortTyped[float32](doc, opts)
	case "float64":
		return sortTyped[float64](doc, opts)
	}
	return nil, fmt.Errorf("unsupported dtype %q (want one of %s)", doc.DType, strings.Join(dtypes, ", "))
}

func sortTyped[T nd.Number](doc *document, opts sortOptions) (*result[T], error) {
	in, err := view[T](doc)
	if err != nil {
		return nil, err
	}

	dir := nd.FromAscending(!opts.descending)
	dims := in.Dims
	n := dims.Elements()
	out := nd.NewView(make([]T, n), dims[:]...)
	res := &result[T]{DType: doc.DType, Dims: doc.Dims, Data: out.Data}
	logOpt := batchsort.WithLogger(slog.Default())

	switch opts.mode {
	case modeValues:
		batchsort.Sort(out, in, dir, logOpt)
		if opts.verify {
			err = verify.Sorted(out, dir)
		}

	case modeIndex:
		idx := nd.NewView(make([]nd.Index, n), dims[:]...)
		batchsort.SortIndex(out, idx, in, dir, logOpt)
		res.Indices = idx.Data
		if opts.verify {
			err = errors.Join(
				verify.Sorted(out, dir),
				verify.Permutation(idx),
				verify.Gathered(out, idx, in),
				verify.StableTies(out, idx),
			)
		}

	case modeKey:
		if len(doc.Values) != len(doc.Data) {
			return nil, fmt.Errorf("key mode needs %d values, document has %d", len(doc.Data), len(doc.Values))
		}
		ival := nd.NewStridedView(doc.Values, in.Dims, in.Strides)
		oval := nd.NewView(make([]any, n), dims[:]...)
		batchsort.SortByKey(out, oval, in, ival, dir, logOpt)
		res.Values = oval.Data
		if opts.verify {
			err = verify.ByKey(out, oval, in, ival, dir)
		}

	default:
		return nil, fmt.Errorf("unknown mode %q (want one of %s)", opts.mode, strings.Join(modes, ", "))
	}

	if err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}
	if opts.verify {
		slog.Debug("result verified", "mode", opts.mode, "dims", dims, "dir", dir.String())
	}
	return res, nil
}

func writeResult(w io.Writer, res any, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(res, "", "  ")
		out = append(out, '\n')
	case "yaml", "":
		out, err = yaml.Marshal(res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = w.Write(out)
	return err
}
