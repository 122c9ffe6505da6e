// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sequence turns text into one-hot training sequences for recurrent
// networks.
//
// Example:
//
//	enc, err := sequence.NewEncoder("cl100k_base") // or "bytes"
//	ids, err := enc.Encode("the cat and the hat")
//	vocab := sequence.NewVocabulary(ids)
//	seq, err := vocab.Sequence(ids)
//	err = net.Backprop(seq.Inputs, seq.Targets, 0.01)
package sequence

import (
	"github.com/born-ml/birdbrain/internal/sequence"
	"github.com/born-ml/birdbrain/internal/vecmath"
)

// Encoder converts text to token ids and back.
type Encoder = sequence.Encoder

// ByteEncoder maps every byte of the text to its own id.
type ByteEncoder = sequence.ByteEncoder

// TikTokenEncoder wraps the tiktoken BPE encodings.
type TikTokenEncoder = sequence.TikTokenEncoder

// Vocabulary maps sparse token ids onto dense class indices.
type Vocabulary = sequence.Vocabulary

// Sequence is a next-token training example.
type Sequence = sequence.Sequence

// ErrUnknownToken is returned for ids that are not part of a vocabulary.
var ErrUnknownToken = sequence.ErrUnknownToken

// NewEncoder returns the "bytes" encoder or a named tiktoken encoding.
func NewEncoder(name string) (Encoder, error) {
	return sequence.NewEncoder(name)
}

// NewTikTokenEncoder loads the named tiktoken encoding.
func NewTikTokenEncoder(encodingName string) (*TikTokenEncoder, error) {
	return sequence.NewTikTokenEncoder(encodingName)
}

// NewVocabulary builds a vocabulary from every distinct id in ids.
func NewVocabulary(ids []int) *Vocabulary {
	return sequence.NewVocabulary(ids)
}

// OneHot encodes every class index as a vector of length dim.
func OneHot(indices []int, dim int) []vecmath.Vector {
	return sequence.OneHot(indices, dim)
}

// Shift splits indices into inputs and next-step targets.
func Shift(indices []int) (inputs, targets []int) {
	return sequence.Shift(indices)
}
