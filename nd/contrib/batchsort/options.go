// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package batchsort

import (
	"log/slog"
	"sync"

	"github.com/go-ndsort/ndsort/envconfig"
	"github.com/go-ndsort/ndsort/nd/contrib/workerpool"
)

// Option configures a sort call.
type Option func(*options)

type options struct {
	pool   *workerpool.Pool
	logger *slog.Logger
}

// WithPool runs the call on pool instead of the default pool.
func WithPool(pool *workerpool.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithLogger traces calls on logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

var (
	defaultPoolOnce sync.Once
	defaultPool     *workerpool.Pool
)

// DefaultPool returns the process-wide pool used when no WithPool option is
// given. It is created on first use with envconfig.NumThreads workers and is
// never closed.
func DefaultPool() *workerpool.Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = workerpool.New(envconfig.NumThreads())
	})
	return defaultPool
}

func resolve(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = DefaultPool()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
