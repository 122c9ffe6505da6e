// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the birdbrain playground CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const version = "v0.1.0-dev"

type command struct {
	name    string
	summary string
	run     func(args []string, stdout io.Writer, logger *slog.Logger) error
}

var commands = []command{
	{"version", "Show version", runVersion},
	{"backends", "List compute backends and their availability", runBackends},
	{"ffn", "Train a feedforward network on XOR", runFFN},
	{"rnn", "Train a recurrent network to predict the next token of a text", runRNN},
	{"lstm", "Run an LSTM forward pass over a text", runLSTM},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	os.Exit(run(os.Args[1:], os.Stdout, logger))
}

func run(args []string, stdout io.Writer, logger *slog.Logger) int {
	if len(args) == 0 {
		usage(stdout)
		return 2
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(args[1:], stdout, logger); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			logger.Error("command failed", "command", c.name, "error", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "unknown command %q\n\n", args[0])
	usage(stdout)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Birdbrain - small neural networks on CPU and GPU")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "\nRun 'birdbrain <command> -h' for command flags.")
}

// logLevel reads BIRDBRAIN_LOG (debug, info, warn, error).
func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("BIRDBRAIN_LOG"))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func runVersion(_ []string, stdout io.Writer, _ *slog.Logger) error {
	fmt.Fprintf(stdout, "Birdbrain %s\n", version)
	return nil
}
