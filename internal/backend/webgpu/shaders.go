//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	"fmt"

	"github.com/born-ml/birdbrain/internal/activation"
)

// kernel is a named WGSL compute shader with entry point "main".
type kernel struct {
	name string
	code string
}

// binaryKernel builds an element-wise kernel: result[i] = expr(a[i], b[i]).
func binaryKernel(name, expr string) kernel {
	return kernel{name: name, code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = a[idx];
        let y = b[idx];
        result[idx] = %s;
    }
}
`, workgroupSize, expr)}
}

// scalarKernel builds an element-wise kernel with a broadcast scalar c.
func scalarKernel(name, expr string) kernel {
	return kernel{name: name, code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    scalar: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = input[idx];
        let c = params.scalar;
        result[idx] = %s;
    }
}
`, workgroupSize, expr)}
}

// unaryKernel builds an element-wise kernel: result[i] = expr(input[i]).
func unaryKernel(name, expr string) kernel {
	return kernel{name: name, code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

fn sigmoid(v: f32) -> f32 {
    return 1.0 / (1.0 + exp(-v));
}

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = input[idx];
        result[idx] = %s;
    }
}
`, workgroupSize, expr)}
}

var (
	addKernel = binaryKernel("add", "x + y")
	subKernel = binaryKernel("sub", "x - y")
	mulKernel = binaryKernel("mul", "x * y")
	divKernel = binaryKernel("div", "x / y")

	addScalarKernel = scalarKernel("add_scalar", "x + c")
	subScalarKernel = scalarKernel("sub_scalar", "x - c")
	mulScalarKernel = scalarKernel("mul_scalar", "x * c")
	divScalarKernel = scalarKernel("div_scalar", "x / c")

	sigmoidKernel      = unaryKernel("sigmoid", "sigmoid(x)")
	tanhKernel         = unaryKernel("tanh", "tanh(x)")
	reluKernel         = unaryKernel("relu", "select(x, 0.0, x <= 0.0)")
	sigmoidPrimeKernel = unaryKernel("sigmoid_prime", "sigmoid(x) * (1.0 - sigmoid(x))")
	tanhPrimeKernel    = unaryKernel("tanh_prime", "1.0 - tanh(x) * tanh(x)")
	reluPrimeKernel    = unaryKernel("relu_prime", "select(1.0, 0.0, x <= 0.0)")
)

// activationKernels returns the forward and derivative kernels for act.
func activationKernels(act activation.Activation) (forward, prime kernel, err error) {
	switch act {
	case activation.Sigmoid:
		return sigmoidKernel, sigmoidPrimeKernel, nil
	case activation.Tanh:
		return tanhKernel, tanhPrimeKernel, nil
	case activation.ReLU:
		return reluKernel, reluPrimeKernel, nil
	default:
		return kernel{}, kernel{}, act.Validate()
	}
}

// mvMulKernel computes y = A·x for a row-major rows x cols matrix A.
// One invocation per output row.
var mvMulKernel = kernel{name: "mv_mul", code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    rows: u32,
    cols: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.x;
    if (row >= params.rows) {
        return;
    }
    var acc: f32 = 0.0;
    for (var k: u32 = 0u; k < params.cols; k = k + 1u) {
        acc = acc + a[row * params.cols + k] * x[k];
    }
    result[row] = acc;
}
`, workgroupSize)}

// outerKernel computes result[i*cols+j] = x[i] * y[j].
var outerKernel = kernel{name: "outer", code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    rows: u32,
    cols: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.rows * params.cols) {
        return;
    }
    let i = idx / params.cols;
    let j = idx %% params.cols;
    result[idx] = x[i] * y[j];
}
`, workgroupSize)}

// softmaxKernel normalizes a single vector. Each invocation recomputes the
// max and the denominator, which keeps the kernel free of barriers.
var softmaxKernel = kernel{name: "softmax", code: fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    var max_val: f32 = input[0];
    for (var k: u32 = 1u; k < params.size; k = k + 1u) {
        max_val = max(max_val, input[k]);
    }
    var denom: f32 = 0.0;
    for (var k: u32 = 0u; k < params.size; k = k + 1u) {
        denom = denom + exp(input[k] - max_val);
    }
    result[idx] = exp(input[idx] - max_val) / denom;
}
`, workgroupSize)}
