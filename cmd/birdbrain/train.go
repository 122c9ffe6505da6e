// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/born-ml/birdbrain/nn"
	"github.com/born-ml/birdbrain/sequence"
)

const defaultText = "the quick brown fox jumps over the lazy dog"

// commonFlags are shared by every training command.
type commonFlags struct {
	backend    string
	activation string
	seed       int64
	epochs     int
	lr         float64
	every      int
}

func (c *commonFlags) register(fs *flag.FlagSet, epochs int, lr float64) {
	fs.StringVar(&c.backend, "backend", "cpu", "compute backend: cpu or gpu")
	fs.StringVar(&c.activation, "act", "sigmoid", "activation: sigmoid, tanh or relu")
	fs.Int64Var(&c.seed, "seed", 1, "weight initialization seed")
	fs.IntVar(&c.epochs, "epochs", epochs, "training epochs")
	fs.Float64Var(&c.lr, "lr", lr, "learning rate")
	fs.IntVar(&c.every, "every", 100, "log the loss every N epochs")
}

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	return fs
}

func runFFN(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("ffn", stdout)
	var common commonFlags
	common.register(fs, 2000, 0.5)
	hidden := fs.Int("hidden", 4, "hidden layer size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := nn.ParseActivation(common.activation)
	if err != nil {
		return err
	}
	backend, release, err := openBackend(common.backend, logger)
	if err != nil {
		return err
	}
	defer release()

	net, err := nn.NewFeedforward(nn.FeedforwardConfig{
		Sizes:      []int{2, *hidden, 1},
		Activation: act,
		Backend:    backend,
		Rand:       nn.NewRand(common.seed),
	})
	if err != nil {
		return err
	}

	inputs := []nn.Vector{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := []nn.Vector{{0}, {1}, {1}, {0}}

	logger.Info("training feedforward network", "sizes", net.Sizes(), "activation", act, "backend", backend.Name())
	for epoch := 1; epoch <= common.epochs; epoch++ {
		var loss float32
		for i := range inputs {
			if err := net.Backpropagate(inputs[i], targets[i], float32(common.lr)); err != nil {
				return err
			}
			l, err := net.MSELoss(inputs[i], targets[i])
			if err != nil {
				return err
			}
			loss += l
		}
		if epoch%common.every == 0 || epoch == common.epochs {
			logger.Info("epoch", "n", epoch, "loss", loss/float32(len(inputs)))
		}
	}

	for i, x := range inputs {
		out, err := net.Output(x)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%v -> %.4f (want %v)\n", x, out[0], targets[i][0])
	}
	return nil
}

// textFlags select the training text and its tokenization.
type textFlags struct {
	text     string
	encoding string
}

func (t *textFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&t.text, "text", defaultText, "training text")
	fs.StringVar(&t.encoding, "encoding", "bytes", "tokenizer: bytes or a tiktoken encoding such as cl100k_base")
}

// load tokenizes the text and builds its vocabulary and next-token sequence.
func (t *textFlags) load() (sequence.Encoder, *sequence.Vocabulary, sequence.Sequence, error) {
	enc, err := sequence.NewEncoder(t.encoding)
	if err != nil {
		return nil, nil, sequence.Sequence{}, err
	}
	ids, err := enc.Encode(t.text)
	if err != nil {
		return nil, nil, sequence.Sequence{}, err
	}
	if len(ids) < 2 {
		return nil, nil, sequence.Sequence{}, fmt.Errorf("text %q has fewer than 2 tokens", t.text)
	}
	vocab := sequence.NewVocabulary(ids)
	seq, err := vocab.Sequence(ids)
	if err != nil {
		return nil, nil, sequence.Sequence{}, err
	}
	return enc, vocab, seq, nil
}

// decode turns class indices back into text.
func decode(enc sequence.Encoder, vocab *sequence.Vocabulary, indices []int) (string, error) {
	ids, err := vocab.IDs(indices)
	if err != nil {
		return "", err
	}
	return enc.Decode(ids)
}

func runRNN(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("rnn", stdout)
	var common commonFlags
	var text textFlags
	common.register(fs, 500, 0.05)
	text.register(fs)
	hidden := fs.Int("hidden", 32, "hidden state size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := nn.ParseActivation(common.activation)
	if err != nil {
		return err
	}
	enc, vocab, seq, err := text.load()
	if err != nil {
		return err
	}
	backend, release, err := openBackend(common.backend, logger)
	if err != nil {
		return err
	}
	defer release()

	net, err := nn.NewRecurrent(nn.RecurrentConfig{
		InputDim:   vocab.Size(),
		HiddenDim:  *hidden,
		Activation: act,
		Backend:    backend,
		Rand:       nn.NewRand(common.seed),
	})
	if err != nil {
		return err
	}

	logger.Info("training recurrent network",
		"encoding", enc.Name(), "vocab", vocab.Size(), "steps", len(seq.Targets),
		"hidden", *hidden, "activation", act, "backend", backend.Name())
	for epoch := 1; epoch <= common.epochs; epoch++ {
		if err := net.Backprop(seq.Inputs, seq.Targets, float32(common.lr)); err != nil {
			return err
		}
		if epoch%common.every == 0 || epoch == common.epochs {
			loss, err := net.Loss(seq.Inputs, seq.Targets)
			if err != nil {
				return err
			}
			logger.Info("epoch", "n", epoch, "loss", loss)
		}
	}

	pred, err := net.Predict(seq.Inputs)
	if err != nil {
		return err
	}
	out, err := decode(enc, vocab, pred)
	if err != nil {
		return err
	}
	want, err := decode(enc, vocab, seq.Targets)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "target:    %q\npredicted: %q\n", want, out)
	return nil
}

func runLSTM(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("lstm", stdout)
	var text textFlags
	text.register(fs)
	backendName := fs.String("backend", "cpu", "compute backend: cpu or gpu")
	seed := fs.Int64("seed", 1, "weight initialization seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	enc, vocab, seq, err := text.load()
	if err != nil {
		return err
	}
	backend, release, err := openBackend(*backendName, logger)
	if err != nil {
		return err
	}
	defer release()

	// Output distributions are taken over the cells, so one cell per class.
	net, err := nn.NewLSTM(nn.LSTMConfig{
		InputDim:     vocab.Size(),
		MemCellCount: vocab.Size(),
		Backend:      backend,
		Rand:         nn.NewRand(*seed),
	})
	if err != nil {
		return err
	}

	tr, err := net.Feedforward(seq.Inputs)
	if err != nil {
		return err
	}
	loss, err := net.Loss(seq.Inputs, seq.Targets)
	if err != nil {
		return err
	}

	pred := make([]int, len(tr.Probs))
	for t, p := range tr.Probs {
		pred[t] = p.Argmax()
	}
	out, err := decode(enc, vocab, pred)
	if err != nil {
		return err
	}

	logger.Info("lstm forward pass", "encoding", enc.Name(), "vocab", vocab.Size(), "steps", len(seq.Inputs), "backend", backend.Name())
	fmt.Fprintf(stdout, "loss:      %.4f\npredicted: %q\n", loss, strings.ToValidUTF8(out, "?"))
	return nil
}
