// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sequence

import "github.com/born-ml/birdbrain/internal/vecmath"

// OneHot encodes every class index as a vector of length dim.
// Panics if an index is outside [0, dim).
func OneHot(indices []int, dim int) []vecmath.Vector {
	out := make([]vecmath.Vector, len(indices))
	for i, k := range indices {
		out[i] = vecmath.OneHot(dim, k)
	}
	return out
}

// Shift splits indices into inputs indices[:n-1] and next-step targets
// indices[1:]. Both are nil when fewer than two indices are given.
func Shift(indices []int) (inputs, targets []int) {
	if len(indices) < 2 {
		return nil, nil
	}
	return indices[:len(indices)-1], indices[1:]
}
