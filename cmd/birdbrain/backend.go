// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/born-ml/birdbrain/backend/cpu"
	"github.com/born-ml/birdbrain/backend/webgpu"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/nn"
)

// openBackend returns the backend selected by name and a release function.
// A GPU request falls back to the CPU when no device is available.
func openBackend(name string, logger *slog.Logger) (nn.Backend, func(), error) {
	kind, err := compute.ParseKind(name)
	if err != nil {
		return nil, nil, err
	}
	if kind == compute.CPU {
		return cpu.New(), func() {}, nil
	}

	gpu, err := webgpu.New(webgpu.WithLogger(logger))
	if err != nil {
		logger.Warn("falling back to CPU backend", "error", err)
		return cpu.New(), func() {}, nil
	}
	return gpu, gpu.Release, nil
}

func runBackends(_ []string, stdout io.Writer, logger *slog.Logger) error {
	host := cpu.New()
	fmt.Fprintf(stdout, "%-8s %-10s available\n", host.Kind(), host.Name())

	gpu, err := webgpu.New(webgpu.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stdout, "%-8s %-10s unavailable (%v)\n", nn.GPU, "WebGPU", err)
		return nil
	}
	defer gpu.Release()
	fmt.Fprintf(stdout, "%-8s %-10s available\n", gpu.Kind(), gpu.Name())
	return nil
}
