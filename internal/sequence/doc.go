// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sequence turns text into training sequences for recurrent networks.
//
// Text is first split into token ids by an Encoder (byte level or tiktoken),
// then compacted by a Vocabulary into dense class indices [0, V). Each index
// becomes a one-hot input vector, and the next index is the target:
//
//	enc := sequence.ByteEncoder{}
//	ids, err := enc.Encode("hello")
//	vocab := sequence.NewVocabulary(ids)
//	seq, err := vocab.Sequence(ids)
//	// seq.Inputs[t] is one-hot of ids[t], seq.Targets[t] is the index of ids[t+1].
package sequence
