// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activation provides the activation functions, their derivatives,
// softmax, and the losses shared by every network type.
package activation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

// ErrUnknownActivation is returned for an activation name or value outside
// the supported set.
var ErrUnknownActivation = errors.New("unknown activation function")

// Activation selects a nonlinearity together with its derivative.
// The zero value is invalid so that an unset field is caught by Validate.
type Activation int

// Supported activations.
const (
	Sigmoid Activation = iota + 1
	Tanh
	ReLU
)

// Parse resolves an activation by name. "tangent" is accepted as an alias of
// "tanh".
func Parse(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid":
		return Sigmoid, nil
	case "tanh", "tangent":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	return a >= Sigmoid && a <= ReLU
}

// Validate returns ErrUnknownActivation for an unsupported value.
func (a Activation) Validate() error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownActivation, int(a))
	}
	return nil
}

// String returns the canonical name of the activation.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// Scalar returns the scalar function and derivative for a.
func (a Activation) Scalar() (f, prime func(float32) float32, err error) {
	switch a {
	case Sigmoid:
		return SigmoidScalar, SigmoidPrimeScalar, nil
	case Tanh:
		return math32.Tanh, TanhPrimeScalar, nil
	case ReLU:
		return ReLUScalar, ReLUPrimeScalar, nil
	default:
		return nil, nil, a.Validate()
	}
}

// Apply computes a(x) elementwise.
func (a Activation) Apply(x vecmath.Vector) (vecmath.Vector, error) {
	f, _, err := a.Scalar()
	if err != nil {
		return nil, err
	}
	return mapVector(x, f), nil
}

// Prime computes a'(x) elementwise, where x is the pre-activation.
func (a Activation) Prime(x vecmath.Vector) (vecmath.Vector, error) {
	_, prime, err := a.Scalar()
	if err != nil {
		return nil, err
	}
	return mapVector(x, prime), nil
}

func mapVector(x vecmath.Vector, f func(float32) float32) vecmath.Vector {
	out := make(vecmath.Vector, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// SigmoidScalar returns 1 / (1 + e^-x).
func SigmoidScalar(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// SigmoidPrimeScalar returns sigmoid(x) * (1 - sigmoid(x)).
func SigmoidPrimeScalar(x float32) float32 {
	s := SigmoidScalar(x)
	return s * (1 - s)
}

// TanhPrimeScalar returns 1 - tanh(x)².
func TanhPrimeScalar(x float32) float32 {
	t := math32.Tanh(x)
	return 1 - t*t
}

// ReLUScalar returns max(0, x).
func ReLUScalar(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return x
}

// ReLUPrimeScalar returns 1 for x > 0 and 0 for x <= 0.
func ReLUPrimeScalar(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return 1
}

// Softmax returns e^(z-max z) / Σ e^(z-max z). The max is subtracted before
// exponentiation so large logits do not overflow.
func Softmax(z vecmath.Vector) vecmath.Vector {
	if len(z) == 0 {
		return vecmath.Vector{}
	}
	e := vecmath.Exp(vecmath.SubScalar(z, vecmath.Max(z)))
	return vecmath.DivScalar(e, vecmath.Sum(e))
}

// CostDerivative returns output - target, the seed delta for backpropagation.
func CostDerivative(output, target vecmath.Vector) vecmath.Vector {
	return vecmath.Sub(output, target)
}
