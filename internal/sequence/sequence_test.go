// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

func TestByteEncoder_Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ascii", "hello"},
		{"empty", ""},
		{"utf8", "héllo 世界"},
	}

	enc := ByteEncoder{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := enc.Encode(tt.text)
			require.NoError(t, err)
			assert.Len(t, ids, len(tt.text))

			text, err := enc.Decode(ids)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}

	_, err := enc.Decode([]int{104, 300})
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.Equal(t, "bytes", enc.Name())
}

func TestVocabulary(t *testing.T) {
	vocab := NewVocabulary([]int{104, 101, 108, 108, 111})
	assert.Equal(t, 4, vocab.Size())

	k, err := vocab.Index(108)
	require.NoError(t, err)
	assert.Equal(t, 2, k)

	id, err := vocab.ID(3)
	require.NoError(t, err)
	assert.Equal(t, 111, id)

	assert.Equal(t, 4, vocab.Add(33))
	assert.Equal(t, 0, vocab.Add(104))

	indices, err := vocab.Indices([]int{111, 104})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, indices)

	ids, err := vocab.IDs(indices)
	require.NoError(t, err)
	assert.Equal(t, []int{111, 104}, ids)

	_, err = vocab.Index(7)
	assert.ErrorIs(t, err, ErrUnknownToken)
	_, err = vocab.ID(-1)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestShift(t *testing.T) {
	inputs, targets := Shift([]int{0, 1, 2, 1})
	assert.Equal(t, []int{0, 1, 2}, inputs)
	assert.Equal(t, []int{1, 2, 1}, targets)

	inputs, targets = Shift([]int{3})
	assert.Nil(t, inputs)
	assert.Nil(t, targets)
}

func TestOneHot(t *testing.T) {
	vs := OneHot([]int{2, 0}, 3)
	assert.Equal(t, []vecmath.Vector{{0, 0, 1}, {1, 0, 0}}, vs)
	assert.Panics(t, func() { OneHot([]int{3}, 3) })
}

func TestVocabulary_Sequence(t *testing.T) {
	enc := ByteEncoder{}
	ids, err := enc.Encode("abca")
	require.NoError(t, err)
	vocab := NewVocabulary(ids)

	seq, err := vocab.Sequence(ids)
	require.NoError(t, err)
	assert.Equal(t, []vecmath.Vector{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, seq.Inputs)
	assert.Equal(t, []int{1, 2, 0}, seq.Targets)

	_, err = vocab.Sequence([]int{'z'})
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder("")
	require.NoError(t, err)
	assert.Equal(t, "bytes", enc.Name())

	_, err = NewEncoder("invalid_encoding_xyz")
	assert.Error(t, err)
}

func TestTikTokenEncoder_Roundtrip(t *testing.T) {
	enc, err := NewTikTokenEncoder("cl100k_base")
	if err != nil {
		// Encoding tables are fetched on first use.
		t.Skipf("tiktoken encoding not available: %v", err)
	}
	assert.Equal(t, "cl100k_base", enc.Name())

	for _, text := range []string{"Hello, world!", "Hello\nWorld\n", ""} {
		ids, err := enc.Encode(text)
		require.NoError(t, err)
		decoded, err := enc.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}

	ids, err := enc.Encode("the cat and the cat")
	require.NoError(t, err)
	vocab := NewVocabulary(ids)
	assert.Less(t, vocab.Size(), len(ids))

	seq, err := vocab.Sequence(ids)
	require.NoError(t, err)
	assert.Len(t, seq.Inputs, len(ids)-1)
	for _, x := range seq.Inputs {
		assert.Len(t, x, vocab.Size())
	}
}

func TestTikTokenEncoderForModel(t *testing.T) {
	enc, err := NewTikTokenEncoderForModel("gpt-4")
	if err != nil {
		t.Skipf("tiktoken encoding not available: %v", err)
	}
	assert.Equal(t, "gpt-4", enc.Name())

	_, err = NewTikTokenEncoderForModel("no-such-model")
	assert.Error(t, err)
}
