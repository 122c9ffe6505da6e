// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"cpu": CPU, "GPU": GPU, "webgpu": GPU} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("tpu")
	assert.Error(t, err)

	assert.Equal(t, "cpu", CPU.String())
	assert.Equal(t, "gpu", GPU.String())
}

func TestChecks(t *testing.T) {
	assert.NoError(t, CheckPair("add", vecmath.Vector{1}, vecmath.Vector{2}))
	assert.ErrorIs(t, CheckPair("add", vecmath.Vector{1}, nil), ErrShapeMismatch)

	a := vecmath.ZeroMatrix(2, 3)
	assert.NoError(t, CheckMV(a, vecmath.Zeros(3)))
	assert.ErrorIs(t, CheckMV(a, vecmath.Zeros(2)), ErrShapeMismatch)

	broken := vecmath.Matrix{Data: vecmath.Zeros(5), Rows: 2, Cols: 3}
	assert.ErrorIs(t, CheckMV(broken, vecmath.Zeros(3)), ErrShapeMismatch)
}
