// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"io"
	"log/slog"
)

// workgroupSize is the number of invocations per workgroup in every kernel.
const workgroupSize = 128

// Option configures a Backend.
type Option func(*options)

// PowerPreference selects which adapter to request when several are present.
type PowerPreference int

const (
	// HighPerformance prefers a discrete GPU.
	HighPerformance PowerPreference = iota
	// LowPower prefers an integrated GPU.
	LowPower
)

type options struct {
	logger          *slog.Logger
	cachePipelines  bool
	powerPreference PowerPreference
}

func defaultOptions() options {
	return options{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		cachePipelines:  true,
		powerPreference: HighPerformance,
	}
}

// WithLogger sets the logger used for device and pipeline lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPipelineCache controls whether compiled kernels are kept for the
// lifetime of the backend. When disabled, every call compiles its kernel and
// releases it afterwards.
func WithPipelineCache(enabled bool) Option {
	return func(o *options) {
		o.cachePipelines = enabled
	}
}

// WithPowerPreference selects the adapter power profile.
func WithPowerPreference(p PowerPreference) Option {
	return func(o *options) {
		o.powerPreference = p
	}
}

// workgroups returns ceil(n / workgroupSize).
func workgroups(n int) uint32 {
	//nolint:gosec // G115: n is a non-negative buffer length.
	return uint32((n + workgroupSize - 1) / workgroupSize)
}
