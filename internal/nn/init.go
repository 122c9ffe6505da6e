// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Rand is the random source owned by a network for weight initialization.
// It is not safe for concurrent use.
type Rand struct {
	src *rand.Rand

	// Polar Box-Muller produces values in pairs; the second one is kept for
	// the next call.
	spare      float32
	spareReady bool
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *Rand {
	//nolint:gosec // G404: weight initialization is not security-critical.
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// NewEntropyRand returns a source seeded from the runtime's random state.
func NewEntropyRand() *Rand {
	//nolint:gosec // G404: weight initialization is not security-critical.
	return NewRand(rand.Int63())
}

// Uniform returns a value drawn from U(-1/sqrt(fanIn), 1/sqrt(fanIn)).
func (r *Rand) Uniform(fanIn int) float32 {
	bound := 1 / math.Sqrt(float64(fanIn))
	return float32((r.src.Float64()*2 - 1) * bound)
}

// Gauss returns a standard normal value using the polar Box-Muller method.
func (r *Rand) Gauss() float32 {
	if r.spareReady {
		r.spareReady = false
		return r.spare
	}

	var u, v, s float64
	for {
		u = 2*r.src.Float64() - 1
		v = 2*r.src.Float64() - 1
		s = u*u + v*v
		if s > 0 && s < 1 {
			break
		}
	}

	mul := math.Sqrt(-2 * math.Log(s) / s)
	r.spare = float32(v * mul)
	r.spareReady = true
	return float32(u * mul)
}

// FanInMatrix returns a rows x cols matrix drawn from U(-1/sqrt(fanIn), 1/sqrt(fanIn)).
func (r *Rand) FanInMatrix(rows, cols, fanIn int) vecmath.Matrix {
	m := vecmath.ZeroMatrix(rows, cols)
	for i := range m.Data {
		m.Data[i] = r.Uniform(fanIn)
	}
	return m
}

// GaussMatrix returns a rows x cols matrix of standard normal values.
func (r *Rand) GaussMatrix(rows, cols int) vecmath.Matrix {
	m := vecmath.ZeroMatrix(rows, cols)
	for i := range m.Data {
		m.Data[i] = r.Gauss()
	}
	return m
}
