// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sequence

import (
	"errors"
	"fmt"

	"github.com/born-ml/birdbrain/internal/vecmath"
)

// ErrUnknownToken is returned for ids that are not part of a vocabulary.
var ErrUnknownToken = errors.New("unknown token")

// Vocabulary maps sparse token ids onto dense class indices [0, Size()).
// Indices follow first appearance order.
type Vocabulary struct {
	index map[int]int
	ids   []int
}

// NewVocabulary builds a vocabulary from every distinct id in ids.
func NewVocabulary(ids []int) *Vocabulary {
	v := &Vocabulary{index: make(map[int]int)}
	for _, id := range ids {
		v.Add(id)
	}
	return v
}

// Add registers id if needed and returns its index.
func (v *Vocabulary) Add(id int) int {
	if k, ok := v.index[id]; ok {
		return k
	}
	k := len(v.ids)
	v.index[id] = k
	v.ids = append(v.ids, id)
	return k
}

// Size returns the number of distinct ids.
func (v *Vocabulary) Size() int {
	return len(v.ids)
}

// Index returns the class index of id.
func (v *Vocabulary) Index(id int) (int, error) {
	k, ok := v.index[id]
	if !ok {
		return 0, fmt.Errorf("vocabulary: id %d: %w", id, ErrUnknownToken)
	}
	return k, nil
}

// ID returns the token id of class index k.
func (v *Vocabulary) ID(k int) (int, error) {
	if k < 0 || k >= len(v.ids) {
		return 0, fmt.Errorf("vocabulary: index %d out of range [0, %d): %w", k, len(v.ids), ErrUnknownToken)
	}
	return v.ids[k], nil
}

// Indices maps every id to its class index.
func (v *Vocabulary) Indices(ids []int) ([]int, error) {
	out := make([]int, len(ids))
	for i, id := range ids {
		k, err := v.Index(id)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

// IDs maps class indices back to token ids.
func (v *Vocabulary) IDs(indices []int) ([]int, error) {
	out := make([]int, len(indices))
	for i, k := range indices {
		id, err := v.ID(k)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// Sequence is a next-token training example: Targets[t] is the class that
// follows the one encoded by Inputs[t].
type Sequence struct {
	Inputs  []vecmath.Vector
	Targets []int
}

// Sequence builds a next-token example from ids.
// Fewer than two ids yield an empty sequence.
func (v *Vocabulary) Sequence(ids []int) (Sequence, error) {
	indices, err := v.Indices(ids)
	if err != nil {
		return Sequence{}, err
	}
	inputs, targets := Shift(indices)
	return Sequence{Inputs: OneHot(inputs, v.Size()), Targets: targets}, nil
}
