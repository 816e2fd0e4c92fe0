// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/lineread"
	"github.com/matt-FFFFFF/hsh/internal/substitute"
	"github.com/matt-FFFFFF/hsh/internal/tokenize"
)

// Run reads and executes lines until the input ends, exit is run, or ctx is
// cancelled. It returns the code the process should exit with.
//
// Run does not call Close.
func (s *Session) Run(ctx context.Context) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	for {
		if err := ctx.Err(); err != nil {
			ctxlog.Info(ctx, "session cancelled", "status", s.Status)
			return s.Status, err
		}

		if s.Interactive && !s.inputPrompts {
			fmt.Fprint(s.Stdout, s.Config.Prompt) //nolint:errcheck
		}

		line, err := s.acquire()
		if errors.Is(err, io.EOF) {
			if s.Interactive {
				fmt.Fprintln(s.Stdout) //nolint:errcheck
			}

			break
		}

		if err != nil {
			ctxlog.Error(ctx, "input failed", "error", err)
			return s.Status, errors.Join(ErrRead, err)
		}

		err = s.RunLine(ctx, line)

		switch {
		case errors.Is(err, ErrExit):
			return s.ExitCode, nil
		case err != nil:
			return s.Status, err
		}
	}

	if !s.Interactive && s.Status != 0 {
		return s.Status, nil
	}

	return 0, nil
}

// acquire reads the next line, strips its comment and records it in history.
func (s *Session) acquire() (string, error) {
	line, err := s.input.ReadLine()
	if err != nil {
		return "", err
	}

	line = lineread.StripComment(line)
	s.LineCount++
	s.History.Add(line)

	return line, nil
}

// RunLine executes every segment of line in order, honouring `&&` and `||`.
// It returns ErrExit when exit ran, or the context error when cancelled
// between segments.
func (s *Session) RunLine(ctx context.Context, line string) error {
	s.Splitter.Load(line)

	for {
		seg, ok := s.Splitter.Next(s.Status)
		if !ok {
			return nil
		}

		if err := ctx.Err(); err != nil {
			s.Splitter.Load("")
			return err
		}

		if err := s.runSegment(ctx, seg); err != nil {
			s.Splitter.Load("")
			return err
		}
	}
}

func (s *Session) runSegment(ctx context.Context, seg string) error {
	argv := tokenize.Fields(seg, tokenize.DefaultDelims)
	if len(argv) == 0 {
		return nil
	}

	argv = substitute.Aliases(argv, s.Aliases)
	substitute.Variables(argv, s.Env, s.Status, s.Pid)

	s.Argv = argv

	return s.dispatch(ctx)
}
