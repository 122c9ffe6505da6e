// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/birdbrain/internal/backend/cpu"
	"github.com/born-ml/birdbrain/internal/compute"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend runs every primitive in pure Go, with matrix-vector
// products going through gonum's BLAS routines.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements the compute interface.
var _ compute.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/birdbrain/backend/cpu"
//	    "github.com/born-ml/birdbrain/nn"
//	)
//
//	func main() {
//	    net, err := nn.NewFeedforward(nn.FeedforwardConfig{
//	        Sizes:      []int{2, 3, 1},
//	        Activation: nn.Sigmoid,
//	        Backend:    cpu.New(),
//	    })
//	}
func New() *Backend {
	return internalcpu.New()
}
