// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vecmath

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is matched by every operand-shape violation.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError describes an operand that does not fit the operation.
type ShapeError struct {
	Op   string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: want %d, got %d", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// CheckLen returns a *ShapeError when got != want.
func CheckLen(op string, want, got int) error {
	if want != got {
		return &ShapeError{Op: op, Want: want, Got: got}
	}
	return nil
}

// mustLen panics on a length mismatch. Shape violations inside the math layer
// are programming errors; callers at the API boundary validate first.
func mustLen(op string, want, got int) {
	if err := CheckLen(op, want, got); err != nil {
		panic(err)
	}
}
