// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

var (
	// ErrConfiguration is matched by every invalid network construction.
	ErrConfiguration = errors.New("invalid network configuration")

	// ErrShapeMismatch is matched by operand or network shape violations.
	ErrShapeMismatch = vecmath.ErrShapeMismatch
)

// ConfigError reports which configuration field was rejected and why.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %s: %v", ErrConfiguration, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Unwrap exposes both ErrConfiguration and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// checkDim validates a vector length at the network API boundary.
func checkDim(op string, want int, v vecmath.Vector) error {
	return vecmath.CheckLen(op, want, len(v))
}

// checkSequence validates every step of an input sequence.
func checkSequence(op string, want int, seq []vecmath.Vector) error {
	for t, x := range seq {
		if err := checkDim(op, want, x); err != nil {
			return fmt.Errorf("step %d: %w", t, err)
		}
	}
	return nil
}

// checkTargets validates per-step class indices against a sequence.
func checkTargets(op string, classes int, seq []vecmath.Vector, targets []int) error {
	if err := vecmath.CheckLen(op+" targets", len(seq), len(targets)); err != nil {
		return err
	}
	for t, k := range targets {
		if k < 0 || k >= classes {
			return fmt.Errorf("%s: step %d: target %d out of range [0, %d): %w", op, t, k, classes, ErrShapeMismatch)
		}
	}
	return nil
}
