// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package envconfig reads ndsort settings from the environment.
//
//   - NDSORT_NUM_THREADS: workers in the default sort pool (0 = GOMAXPROCS)
//   - NDSORT_DEBUG: log verbosity of the ndsort command
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Var returns the value of an environment variable with surrounding
// whitespace and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Uint returns a function that reads key as an unsigned integer, falling back
// to defaultValue when the variable is unset or malformed.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// NumThreads returns the worker count for the default sort pool. Configured
// via NDSORT_NUM_THREADS; 0 or unset means GOMAXPROCS.
func NumThreads() int {
	n := int(Uint("NDSORT_NUM_THREADS", 0)())
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return n
}

// LogLevel returns the log level. Configured via NDSORT_DEBUG: a true boolean
// selects debug, an integer n selects level -4n.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("NDSORT_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// EnvVar describes one setting.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"NDSORT_NUM_THREADS": {"NDSORT_NUM_THREADS", NumThreads(), "Workers used to sort batches in parallel (default: GOMAXPROCS)"},
		"NDSORT_DEBUG":       {"NDSORT_DEBUG", LogLevel(), "Show additional debug information (e.g. NDSORT_DEBUG=1)"},
	}
}

// Values returns every setting formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
