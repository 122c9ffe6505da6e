// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

const epsilon = 1e-5

func TestBackendIdentity(t *testing.T) {
	backend := New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, compute.CPU, backend.Kind())
}

func TestBinaryOps(t *testing.T) {
	backend := New()
	x := vecmath.Vector{1, 2, 3}
	y := vecmath.Vector{4, 5, 6}

	add, err := backend.Add(x, y)
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{5, 7, 9}, add)

	sub, err := backend.Sub(x, y)
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{-3, -3, -3}, sub)

	mul, err := backend.Mul(x, y)
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{4, 10, 18}, mul)

	div, err := backend.Div(y, x)
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{4, 2.5, 2}, div)
}

func TestBinaryOps_ShapeMismatch(t *testing.T) {
	backend := New()
	ops := map[string]func(x, y vecmath.Vector) (vecmath.Vector, error){
		"add": backend.Add,
		"sub": backend.Sub,
		"mul": backend.Mul,
		"div": backend.Div,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			out, err := op(vecmath.Vector{1, 2}, vecmath.Vector{1})
			assert.ErrorIs(t, err, compute.ErrShapeMismatch)
			assert.Nil(t, out)
		})
	}
}

func TestScalarOps(t *testing.T) {
	backend := New()
	x := vecmath.Vector{2, 4}

	tests := []struct {
		name string
		op   func(vecmath.Vector, float32) (vecmath.Vector, error)
		want vecmath.Vector
	}{
		{"add", backend.AddScalar, vecmath.Vector{4, 6}},
		{"sub", backend.SubScalar, vecmath.Vector{0, 2}},
		{"mul", backend.MulScalar, vecmath.Vector{4, 8}},
		{"div", backend.DivScalar, vecmath.Vector{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(x, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMVMul(t *testing.T) {
	backend := New()
	a, err := vecmath.NewMatrix(vecmath.Vector{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	y, err := backend.MVMul(a, vecmath.Vector{1, 1})
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{3, 7}, y)

	_, err = backend.MVMul(a, vecmath.Vector{1, 1, 1})
	assert.ErrorIs(t, err, compute.ErrShapeMismatch)
}

func TestOuter(t *testing.T) {
	backend := New()
	m, err := backend.Outer(vecmath.Vector{1, 2}, vecmath.Vector{3, 4})
	require.NoError(t, err)
	assert.Equal(t, vecmath.Vector{3, 4, 6, 8}, m.Data)
}

func TestActivations(t *testing.T) {
	backend := New()
	x := vecmath.Vector{0}

	s, err := backend.Activate(activation.Sigmoid, x)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s[0], epsilon)

	sp, err := backend.ActivatePrime(activation.Sigmoid, x)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, sp[0], epsilon)

	tp, err := backend.ActivatePrime(activation.Tanh, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tp[0], epsilon)

	_, err = backend.Activate(activation.Activation(0), x)
	assert.ErrorIs(t, err, activation.ErrUnknownActivation)

	p, err := backend.Softmax(vecmath.Vector{1, 3, 2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vecmath.Sum(p), epsilon)
	assert.InDelta(t, 0.6439, p[3], 1e-4)
}
