// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for network primitives.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - float32 vectors and row-major matrices
//   - Matrix-vector products and outer products via gonum BLAS
//   - Numerically stable softmax
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/birdbrain/backend/cpu"
//	    "github.com/born-ml/birdbrain/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    y, err := backend.MVMul(m, x)
//
//	    net, err := nn.NewRecurrent(nn.RecurrentConfig{
//	        InputDim:   8,
//	        HiddenDim:  16,
//	        Activation: nn.Tanh,
//	        Backend:    backend,
//	    })
//	}
//
// # Errors
//
// Every operation validates operand lengths and returns an error wrapping
// nn.ErrShapeMismatch instead of panicking.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// result and does not share mutable state.
package cpu
