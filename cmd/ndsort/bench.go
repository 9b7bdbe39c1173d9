// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/go-ndsort/ndsort/envconfig"
	"github.com/go-ndsort/ndsort/nd"
	"github.com/go-ndsort/ndsort/nd/contrib/batchsort"
	"github.com/go-ndsort/ndsort/nd/contrib/verify"
	"github.com/go-ndsort/ndsort/nd/contrib/workerpool"
)

type benchOptions struct {
	dims       []int
	dtypes     []string
	modes      []string
	descending bool
	iterations int
	threads    int
	seed       int64
}

// benchResult is one row of the bench table.
type benchResult struct {
	dtype   string
	mode    string
	dims    nd.Dims
	threads int
	mean    time.Duration
	stddev  time.Duration
}

func (r benchResult) throughput() float64 {
	if r.mean <= 0 {
		return 0
	}
	return float64(r.dims.Elements()) / r.mean.Seconds() / 1e6
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time batched sorts of random arrays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := runBench(opts)
			if err != nil {
				return err
			}
			writeBenchTable(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&opts.dims, "dims", []int{1024, 256}, "Array extents, leading (sorted) dimension first")
	cmd.Flags().StringSliceVar(&opts.dtypes, "dtype", []string{"float32"}, "Element types ("+strings.Join(dtypes, ", ")+")")
	cmd.Flags().StringSliceVar(&opts.modes, "mode", []string{modeValues}, "Sort modes ("+strings.Join(modes, ", ")+")")
	cmd.Flags().BoolVarP(&opts.descending, "descending", "d", false, "Sort in descending order")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 10, "Timed sorts per configuration")
	cmd.Flags().IntVar(&opts.threads, "threads", 0, "Workers (default: NDSORT_NUM_THREADS or GOMAXPROCS)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Random seed")
	return cmd
}

func runBench(opts benchOptions) ([]benchResult, error) {
	if len(opts.dims) == 0 || len(opts.dims) > nd.MaxDims {
		return nil, fmt.Errorf("--dims needs 1 to %d extents, got %d", nd.MaxDims, len(opts.dims))
	}
	for _, d := range opts.dims {
		if d <= 0 {
			return nil, fmt.Errorf("--dims extents must be positive, got %v", opts.dims)
		}
	}
	if opts.iterations <= 0 {
		return nil, errors.New("--iterations must be positive")
	}

	threads := opts.threads
	if threads <= 0 {
		threads = envconfig.NumThreads()
	}
	pool := workerpool.New(threads)
	defer pool.Close()

	var results []benchResult
	for _, dtype := range opts.dtypes {
		for _, mode := range opts.modes {
			var (
				res benchResult
				err error
			)
			switch dtype {
			case "int8":
				res, err = benchTyped[int8](opts, mode, pool)
			case "int16":
				res, err = benchTyped[int16](opts, mode, pool)
			case "int32":
				res, err = benchTyped[int32](opts, mode, pool)
			case "int64":
				res, err = benchTyped[int64](opts, mode, pool)
			case "uint8":
				res, err = benchTyped[uint8](opts, mode, pool)
			case "uint16":
				res, err = benchTyped[uint16](opts, mode, pool)
			case "uint32":
				res, err = benchTyped[uint32](opts, mode, pool)
			case "uint64":
				res, err = benchTyped[uint64](opts, mode, pool)
			case "float32":
				res, err = benchTyped[float32](opts, mode, pool)
			case "float64":
				res, err = benchTyped[float64](opts, mode, pool)
			default:
				return nil, fmt.Errorf("unsupported dtype %q (want one of %s)", dtype, strings.Join(dtypes, ", "))
			}
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", dtype, mode, err)
			}
			res.dtype = dtype
			results = append(results, res)
		}
	}
	return results, nil
}

// fillRandom fills every run of v from its own seeded source, so the data
// does not depend on how runs are scheduled across workers.
func fillRandom[T nd.Number](v nd.View[T], seed int64, pool *workerpool.Pool) {
	var probe T = 1
	isFloat := probe/2 != 0

	it := nd.NewBatchIterator(v.Dims, v.Strides)
	pool.ParallelForAtomic(it.Len(), func(b int) {
		r := rand.New(rand.NewSource(seed + int64(b)))
		run := v.RunAt(it.Offsets(b, nil)[0])
		for i := range run {
			if isFloat {
				run[i] = T(r.NormFloat64() * 1e3)
			} else {
				run[i] = T(r.Uint64())
			}
		}
	})
}

func benchTyped[T nd.Number](opts benchOptions, mode string, pool *workerpool.Pool) (benchResult, error) {
	in := nd.NewView(make([]T, product(opts.dims)), opts.dims...)
	dims := in.Dims
	dir := nd.FromAscending(!opts.descending)
	n := dims.Elements()

	out := nd.NewView(make([]T, n), dims[:]...)
	idx := nd.NewView(make([]nd.Index, n), dims[:]...)
	ival := nd.NewView(make([]int64, n), dims[:]...)
	oval := nd.NewView(make([]int64, n), dims[:]...)
	for i := range ival.Data {
		ival.Data[i] = int64(i)
	}

	var run func()
	var check func() error
	switch mode {
	case modeValues:
		run = func() { batchsort.Sort(out, in, dir, batchsort.WithPool(pool)) }
		check = func() error { return verify.Sorted(out, dir) }
	case modeIndex:
		run = func() { batchsort.SortIndex(out, idx, in, dir, batchsort.WithPool(pool)) }
		check = func() error {
			return errors.Join(verify.Sorted(out, dir), verify.Permutation(idx), verify.Gathered(out, idx, in))
		}
	case modeKey:
		run = func() { batchsort.SortByKey(out, oval, in, ival, dir, batchsort.WithPool(pool)) }
		check = func() error { return verify.ByKey(out, oval, in, ival, dir) }
	default:
		return benchResult{}, fmt.Errorf("unknown mode %q (want one of %s)", mode, strings.Join(modes, ", "))
	}

	samples := make([]float64, opts.iterations)
	for i := range samples {
		fillRandom(in, opts.seed+int64(i)*int64(dims.Batches()), pool)
		start := time.Now()
		run()
		samples[i] = float64(time.Since(start))
		if err := check(); err != nil {
			return benchResult{}, err
		}
	}

	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) == 1 {
		std = 0
	}
	slog.Debug("bench configuration done", "mode", mode, "dims", dims, "mean", time.Duration(mean))
	return benchResult{
		mode:    mode,
		dims:    dims,
		threads: pool.NumWorkers(),
		mean:    time.Duration(mean),
		stddev:  time.Duration(std),
	}, nil
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}

func writeBenchTable(w io.Writer, results []benchResult) {
	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			r.dtype,
			r.mode,
			fmt.Sprintf("%dx%dx%dx%d", r.dims[0], r.dims[1], r.dims[2], r.dims[3]),
			fmt.Sprint(r.dims.Batches()),
			fmt.Sprint(r.threads),
			r.mean.Round(time.Microsecond).String(),
			r.stddev.Round(time.Microsecond).String(),
			fmt.Sprintf("%.1f", r.throughput()),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"DTYPE", "MODE", "DIMS", "BATCHES", "THREADS", "MEAN", "STDDEV", "MELEM/S"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
