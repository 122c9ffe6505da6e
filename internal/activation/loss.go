// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package activation

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

// MSE returns 1/(2n) Σ (output - target)².
func MSE(output, target vecmath.Vector) float32 {
	diff := vecmath.Sub(output, target)
	if len(diff) == 0 {
		return 0
	}
	return vecmath.Dot(diff, diff) / float32(2*len(diff))
}

// CrossEntropy returns -Σ target·log(output) for a target distribution.
// Terms with a zero target contribute nothing, even when the output is zero.
func CrossEntropy(output, target vecmath.Vector) float32 {
	if err := vecmath.CheckLen("cross entropy", len(output), len(target)); err != nil {
		panic(err)
	}
	var loss float32
	for i, t := range target {
		if t == 0 {
			continue
		}
		loss -= t * math32.Log(output[i])
	}
	return loss
}

// CrossEntropyIndex returns -log(p[k]), the cross entropy of p against the
// one-hot target k.
func CrossEntropyIndex(p vecmath.Vector, k int) float32 {
	return -math32.Log(p[k])
}
