// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/born-ml/birdbrain/internal/activation"
	"github.com/born-ml/birdbrain/internal/backend/cpu"
	"github.com/born-ml/birdbrain/internal/compute"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// WeightInit selects how weight matrices are initialized.
type WeightInit int

const (
	// InitFanIn draws from U(-1/sqrt(fanIn), 1/sqrt(fanIn)).
	InitFanIn WeightInit = iota
	// InitGaussian draws from N(0, 1).
	InitGaussian
)

// String returns the initializer name.
func (w WeightInit) String() string {
	switch w {
	case InitFanIn:
		return "fan-in"
	case InitGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("WeightInit(%d)", int(w))
	}
}

// FeedforwardConfig holds configuration for a feedforward network.
type FeedforwardConfig struct {
	Sizes      []int                 // Layer sizes, input first; at least two entries
	Activation activation.Activation // Nonlinearity used by every layer
	Backend    compute.Backend       // Execution target (default: CPU)
	Rand       *Rand                 // Weight initialization source (default: entropy-seeded)
	Init       WeightInit            // Weight initializer (default: InitFanIn)
}

// Validate checks the configuration.
func (c FeedforwardConfig) Validate() error {
	if len(c.Sizes) < 2 {
		return configErr("Sizes", fmt.Sprintf("network needs at least 2 layers, got %d", len(c.Sizes)))
	}
	for i, s := range c.Sizes {
		if s <= 0 {
			return configErr("Sizes", fmt.Sprintf("layer %d has non-positive size %d", i, s))
		}
	}
	return validateCommon(c.Activation, c.Init)
}

// RecurrentConfig holds configuration for a single-hidden-layer RNN.
type RecurrentConfig struct {
	InputDim   int                   // Input and output (vocabulary) dimension
	HiddenDim  int                   // Hidden state dimension
	Activation activation.Activation // Hidden state nonlinearity
	Backend    compute.Backend       // Execution target (default: CPU)
	Rand       *Rand                 // Weight initialization source (default: entropy-seeded)
	Init       WeightInit            // Weight initializer (default: InitFanIn)
}

// Validate checks the configuration.
func (c RecurrentConfig) Validate() error {
	if c.InputDim <= 0 {
		return configErr("InputDim", fmt.Sprintf("must be positive, got %d", c.InputDim))
	}
	if c.HiddenDim <= 0 {
		return configErr("HiddenDim", fmt.Sprintf("must be positive, got %d", c.HiddenDim))
	}
	return validateCommon(c.Activation, c.Init)
}

// LSTMConfig holds configuration for an LSTM network.
type LSTMConfig struct {
	InputDim     int             // Input dimension
	MemCellCount int             // Number of memory cells (hidden and output dimension)
	Backend      compute.Backend // Execution target (default: CPU)
	Rand         *Rand           // Weight initialization source (default: entropy-seeded)
	Init         WeightInit      // Weight initializer (default: InitFanIn)
}

// Validate checks the configuration.
func (c LSTMConfig) Validate() error {
	if c.InputDim <= 0 {
		return configErr("InputDim", fmt.Sprintf("must be positive, got %d", c.InputDim))
	}
	if c.MemCellCount <= 0 {
		return configErr("MemCellCount", fmt.Sprintf("must be positive, got %d", c.MemCellCount))
	}
	return validateInit(c.Init)
}

func validateCommon(act activation.Activation, init WeightInit) error {
	if err := act.Validate(); err != nil {
		return &ConfigError{Field: "Activation", Reason: "unsupported activation", Err: err}
	}
	return validateInit(init)
}

func validateInit(init WeightInit) error {
	if init != InitFanIn && init != InitGaussian {
		return configErr("Init", fmt.Sprintf("unknown initializer %v", init))
	}
	return nil
}

func backendOrDefault(b compute.Backend) compute.Backend {
	if b == nil {
		return cpu.New()
	}
	return b
}

func randOrDefault(r *Rand) *Rand {
	if r == nil {
		return NewEntropyRand()
	}
	return r
}

// newWeights draws a rows x cols matrix with the configured initializer.
func newWeights(r *Rand, init WeightInit, rows, cols, fanIn int) vecmath.Matrix {
	if init == InitGaussian {
		return r.GaussMatrix(rows, cols)
	}
	return r.FanInMatrix(rows, cols, fanIn)
}
