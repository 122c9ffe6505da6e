// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Activate applies act elementwise.
func (cpu *CPUBackend) Activate(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	return act.Apply(x)
}

// ActivatePrime applies the derivative of act to the pre-activations x.
func (cpu *CPUBackend) ActivatePrime(act activation.Activation, x vecmath.Vector) (vecmath.Vector, error) {
	return act.Prime(x)
}

// Softmax computes a numerically stable softmax over x.
func (cpu *CPUBackend) Softmax(x vecmath.Vector) (vecmath.Vector, error) {
	return activation.Softmax(x), nil
}
