// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lineread

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// Prompter is the subset of *liner.State used by PromptReader.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

var _ Prompter = (*liner.State)(nil)

// PromptReader is an io.Reader that reads whole lines from an interactive prompt.
// Each line is delivered with a trailing newline. A Ctrl-C at the prompt
// discards the current line and prompts again.
type PromptReader struct {
	p       Prompter
	prompt  func() string
	pending []byte
}

// NewPromptReader returns a PromptReader. The prompt function is evaluated
// before every prompt so callers can change it between lines.
func NewPromptReader(p Prompter, prompt func() string) *PromptReader {
	return &PromptReader{p: p, prompt: prompt}
}

// Read implements io.Reader.
func (pr *PromptReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	for len(pr.pending) == 0 {
		line, err := pr.p.Prompt(pr.prompt())

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			return 0, io.EOF
		case err != nil:
			return 0, err
		}

		if line != "" {
			pr.p.AppendHistory(line)
		}

		pr.pending = append([]byte(line), '\n')
	}

	n := copy(b, pr.pending)
	pr.pending = pr.pending[n:]

	return n, nil
}
