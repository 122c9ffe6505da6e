// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vecmath

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Matrix is a row-major matrix. Data always holds exactly Rows*Cols values.
type Matrix struct {
	Data Vector
	Rows int
	Cols int
}

// NewMatrix wraps data as a rows x cols matrix.
func NewMatrix(data Vector, rows, cols int) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, &ShapeError{Op: "matrix", Want: 0, Got: min(rows, cols)}
	}
	if err := CheckLen("matrix", rows*cols, len(data)); err != nil {
		return Matrix{}, err
	}
	return Matrix{Data: data, Rows: rows, Cols: cols}, nil
}

// ZeroMatrix returns a rows x cols matrix of zeros.
func ZeroMatrix(rows, cols int) Matrix {
	return Matrix{Data: Zeros(rows * cols), Rows: rows, Cols: cols}
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	return Matrix{Data: m.Data.Clone(), Rows: m.Rows, Cols: m.Cols}
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float32 {
	return m.Data[i*m.Cols+j]
}

// Set assigns v to row i, column j.
func (m Matrix) Set(i, j int, v float32) {
	m.Data[i*m.Cols+j] = v
}

// Row returns row i as a slice sharing storage with m.
func (m Matrix) Row(i int) Vector {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// SameShape reports whether m and o have identical dimensions.
func (m Matrix) SameShape(o Matrix) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols
}

// AddScaledInPlace performs m += alpha * o.
func (m Matrix) AddScaledInPlace(alpha float32, o Matrix) {
	mustLen("matrix axpy", m.Rows*m.Cols, o.Rows*o.Cols)
	mustLen("matrix axpy", m.Cols, o.Cols)
	AddScaledInPlace(m.Data, alpha, o.Data)
}

func (m Matrix) blas() blas32.General {
	return blas32.General{Rows: m.Rows, Cols: m.Cols, Stride: max(m.Cols, 1), Data: m.Data}
}

// MVMul returns A·x. len(x) must equal A.Cols; the result has A.Rows entries.
func MVMul(a Matrix, x Vector) Vector {
	mustLen("mvmul", a.Cols, len(x))
	y := Zeros(a.Rows)
	if a.Rows == 0 || a.Cols == 0 {
		return y
	}
	blas32.Gemv(blas.NoTrans, 1, a.blas(), x.blas(), 0, y.blas())
	return y
}

// MVMulT returns Aᵀ·x without materializing the transpose.
// len(x) must equal A.Rows; the result has A.Cols entries.
func MVMulT(a Matrix, x Vector) Vector {
	mustLen("mvmul transposed", a.Rows, len(x))
	y := Zeros(a.Cols)
	if a.Rows == 0 || a.Cols == 0 {
		return y
	}
	blas32.Gemv(blas.Trans, 1, a.blas(), x.blas(), 0, y.blas())
	return y
}

// Outer returns the len(x) x len(y) matrix with entry (i, j) = x[i]*y[j].
func Outer(x, y Vector) Matrix {
	m := ZeroMatrix(len(x), len(y))
	if len(x) == 0 || len(y) == 0 {
		return m
	}
	blas32.Ger(1, x.blas(), y.blas(), m.blas())
	return m
}

// Transpose returns the Cols x Rows transpose of a.
func Transpose(a Matrix) Matrix {
	t := ZeroMatrix(a.Cols, a.Rows)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			t.Data[j*a.Rows+i] = a.Data[i*a.Cols+j]
		}
	}
	return t
}
