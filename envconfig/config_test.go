// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package envconfig

import (
	"log/slog"
	"runtime"
	"strconv"
	"testing"
)

func TestNumThreads(t *testing.T) {
	cases := map[string]int{
		"":      runtime.GOMAXPROCS(0),
		"0":     runtime.GOMAXPROCS(0),
		"3":     3,
		"'5'":   5,
		" 7 ":   7,
		"bogus": runtime.GOMAXPROCS(0),
		"-2":    runtime.GOMAXPROCS(0),
	}
	for v, want := range cases {
		t.Run(v, func(t *testing.T) {
			t.Setenv("NDSORT_NUM_THREADS", v)
			if got := NumThreads(); got != want {
				t.Errorf("NumThreads() = %d, want %d", got, want)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
	}
	for v, want := range cases {
		t.Run(v, func(t *testing.T) {
			t.Setenv("NDSORT_DEBUG", v)
			if got := LogLevel(); got != want {
				t.Errorf("LogLevel() = %v, want %v", got, want)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Setenv("NDSORT_NUM_THREADS", "6")
	vals := Values()
	if vals["NDSORT_NUM_THREADS"] != strconv.Itoa(6) {
		t.Errorf("Values()[NDSORT_NUM_THREADS] = %q, want 6", vals["NDSORT_NUM_THREADS"])
	}
	if _, ok := AsMap()["NDSORT_DEBUG"]; !ok {
		t.Error("AsMap() is missing NDSORT_DEBUG")
	}
}
