// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/birdbrain/internal/activation"
)

func TestRand_Deterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	assert.Equal(t, a.FanInMatrix(3, 4, 4), b.FanInMatrix(3, 4, 4))
	assert.Equal(t, a.GaussMatrix(2, 5), b.GaussMatrix(2, 5))
}

func TestRand_UniformBounds(t *testing.T) {
	r := NewRand(1)
	bound := float32(1 / math.Sqrt(9))
	for range 1000 {
		v := r.Uniform(9)
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}

func TestRand_GaussSpare(t *testing.T) {
	r := NewRand(5)
	assert.False(t, r.spareReady)

	r.Gauss()
	assert.True(t, r.spareReady)
	spare := r.spare

	assert.Equal(t, spare, r.Gauss())
	assert.False(t, r.spareReady)
}

func TestRand_GaussMoments(t *testing.T) {
	r := NewRand(7)
	const n = 20000
	var sum, sq float64
	for range n {
		v := float64(r.Gauss())
		sum += v
		sq += v * v
	}
	mean := sum / n
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, sq/n-mean*mean, 0.05)
}

func TestWeightInit_Gaussian(t *testing.T) {
	net, err := NewRecurrent(RecurrentConfig{
		InputDim:   3,
		HiddenDim:  2,
		Activation: activation.Tanh,
		Rand:       NewRand(3),
		Init:       InitGaussian,
	})
	assert.NoError(t, err)
	assert.Equal(t, NewRand(3).GaussMatrix(2, 3), net.Weights().Whx)
	assert.Equal(t, "gaussian", InitGaussian.String())
	assert.Equal(t, "fan-in", InitFanIn.String())
}
