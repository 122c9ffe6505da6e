// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/nn"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_Commands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains string
	}{
		{"no args", nil, 2, "Commands:"},
		{"unknown", []string{"serve"}, 2, `unknown command "serve"`},
		{"version", []string{"version"}, 0, version},
		{"backends", []string{"backends"}, 0, "CPU"},
		{"help", []string{"ffn", "-h"}, 0, "-hidden"},
		{"ffn", []string{"ffn", "-epochs", "20", "-every", "10"}, 0, "->"},
		{"rnn", []string{"rnn", "-epochs", "5", "-text", "abcabc", "-hidden", "4", "-act", "tanh"}, 0, "predicted:"},
		{"lstm", []string{"lstm", "-text", "hello"}, 0, "loss:"},
		{"bad activation", []string{"ffn", "-act", "softsign"}, 1, ""},
		{"bad backend", []string{"ffn", "-backend", "tpu"}, 1, ""},
		{"short text", []string{"rnn", "-text", "a"}, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(tt.args, &out, discardLogger())
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}

func TestOpenBackend(t *testing.T) {
	backend, release, err := openBackend("cpu", discardLogger())
	require.NoError(t, err)
	defer release()
	assert.Equal(t, nn.CPU, backend.Kind())

	// GPU requests always yield a usable backend.
	gpu, releaseGPU, err := openBackend("gpu", discardLogger())
	require.NoError(t, err)
	defer releaseGPU()
	assert.NotNil(t, gpu)

	_, _, err = openBackend("tpu", discardLogger())
	assert.Error(t, err)
}
