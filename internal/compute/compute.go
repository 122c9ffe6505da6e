// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compute defines the capability set a network needs from an
// execution target. The CPU and WebGPU backends implement it with the same
// numeric contract, so a network can switch between them transparently.
package compute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// ErrShapeMismatch is returned when operand lengths do not fit the operation.
var ErrShapeMismatch = vecmath.ErrShapeMismatch

// ErrUnavailable is returned when a backend cannot be created on this system.
var ErrUnavailable = errors.New("compute backend unavailable")

// Kind identifies an execution target.
type Kind int

// Execution targets.
const (
	CPU Kind = iota
	GPU
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves "cpu" or "gpu" (also "webgpu").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "cpu":
		return CPU, nil
	case "gpu", "webgpu":
		return GPU, nil
	default:
		return 0, fmt.Errorf("unknown backend kind %q", s)
	}
}

// Backend is the set of primitives every network calls. Implementations must
// be numerically interchangeable: identical inputs give results equal within
// floating-point tolerance. Every call completes before it returns.
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string
	// Kind returns the execution target.
	Kind() Kind

	// Element-wise binary operations. Operands must have equal length.
	Add(x, y vecmath.Vector) (vecmath.Vector, error)
	Sub(x, y vecmath.Vector) (vecmath.Vector, error)
	Mul(x, y vecmath.Vector) (vecmath.Vector, error)
	Div(x, y vecmath.Vector) (vecmath.Vector, error)

	// Scalar operations broadcast c across x.
	AddScalar(x vecmath.Vector, c float32) (vecmath.Vector, error)
	SubScalar(x vecmath.Vector, c float32) (vecmath.Vector, error)
	MulScalar(x vecmath.Vector, c float32) (vecmath.Vector, error)
	DivScalar(x vecmath.Vector, c float32) (vecmath.Vector, error)

	// MVMul returns a·x; len(x) must equal a.Cols.
	MVMul(a vecmath.Matrix, x vecmath.Vector) (vecmath.Vector, error)
	// Outer returns the len(x) x len(y) matrix x·yᵀ.
	Outer(x, y vecmath.Vector) (vecmath.Matrix, error)

	// Activate applies act elementwise.
	Activate(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error)
	// ActivatePrime applies the derivative of act to pre-activations x.
	ActivatePrime(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error)
	// Softmax normalizes x into a probability distribution.
	Softmax(x vecmath.Vector) (vecmath.Vector, error)
}

// CheckPair validates that two operands have equal length.
func CheckPair(op string, x, y vecmath.Vector) error {
	return vecmath.CheckLen(op, len(x), len(y))
}

// CheckMV validates a matrix-vector product.
func CheckMV(a vecmath.Matrix, x vecmath.Vector) error {
	if err := vecmath.CheckLen("mvmul", a.Rows*a.Cols, len(a.Data)); err != nil {
		return err
	}
	return vecmath.CheckLen("mvmul", a.Cols, len(x))
}
