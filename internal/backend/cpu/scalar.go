// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import "github.com/born-ml/birdbrain/internal/vecmath"

// AddScalar adds c to every element of x.
func (cpu *CPUBackend) AddScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return vecmath.AddScalar(x, c), nil
}

// SubScalar subtracts c from every element of x.
func (cpu *CPUBackend) SubScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return vecmath.SubScalar(x, c), nil
}

// MulScalar multiplies every element of x by c.
func (cpu *CPUBackend) MulScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return vecmath.MulScalar(x, c), nil
}

// DivScalar divides every element of x by c.
func (cpu *CPUBackend) DivScalar(x vecmath.Vector, c float32) (vecmath.Vector, error) {
	return vecmath.DivScalar(x, c), nil
}
