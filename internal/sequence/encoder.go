// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Encoder converts text to token ids and back.
type Encoder interface {
	// Encode converts text to token ids.
	Encode(text string) ([]int, error)

	// Decode converts token ids back to text.
	Decode(ids []int) (string, error)

	// Name returns the encoder name.
	Name() string
}

// ByteEncoder maps every byte of the text to its own id in [0, 256).
// It needs no external data.
type ByteEncoder struct{}

// Encode returns the bytes of text as ids.
func (ByteEncoder) Encode(text string) ([]int, error) {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids, nil
}

// Decode turns byte ids back into text.
func (ByteEncoder) Decode(ids []int) (string, error) {
	buf := make([]byte, len(ids))
	for i, id := range ids {
		if id < 0 || id > 255 {
			return "", fmt.Errorf("byte decode: id %d at %d: %w", id, i, ErrUnknownToken)
		}
		buf[i] = byte(id)
	}
	return string(buf), nil
}

// Name returns "bytes".
func (ByteEncoder) Name() string { return "bytes" }

// TikTokenEncoder wraps the pkoukk/tiktoken-go BPE encodings.
//
// Supported encodings include cl100k_base, p50k_base and r50k_base. The
// encoding tables are downloaded and cached by tiktoken-go on first use.
type TikTokenEncoder struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikTokenEncoder loads the named tiktoken encoding.
func NewTikTokenEncoder(encodingName string) (*TikTokenEncoder, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikTokenEncoder{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// NewTikTokenEncoderForModel loads the encoding used by a model, e.g. "gpt-4".
func NewTikTokenEncoderForModel(modelName string) (*TikTokenEncoder, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken for model %q: %w", modelName, err)
	}

	return &TikTokenEncoder{
		encoding: encoding,
		name:     modelName,
	}, nil
}

// Encode converts text to token ids. Special tokens are encoded as text.
func (t *TikTokenEncoder) Encode(text string) ([]int, error) {
	return t.encoding.Encode(text, nil, nil), nil
}

// Decode converts token ids back to text.
func (t *TikTokenEncoder) Decode(ids []int) (string, error) {
	return t.encoding.Decode(ids), nil
}

// Name returns the encoding or model name.
func (t *TikTokenEncoder) Name() string {
	return t.name
}

// NewEncoder returns the encoder registered under name: "bytes" or any
// tiktoken encoding name.
func NewEncoder(name string) (Encoder, error) {
	if name == "" || name == "bytes" {
		return ByteEncoder{}, nil
	}
	return NewTikTokenEncoder(name)
}
