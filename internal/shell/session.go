// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/hsh/internal/alias"
	"github.com/matt-FFFFFF/hsh/internal/chain"
	"github.com/matt-FFFFFF/hsh/internal/config"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/environ"
	"github.com/matt-FFFFFF/hsh/internal/history"
	"github.com/matt-FFFFFF/hsh/internal/lineread"
	"github.com/spf13/afero"
)

var (
	// ErrExit is returned by dispatch when the exit builtin has run.
	// The loop unwinds and the caller exits with ExitCode after Close.
	ErrExit = errors.New("exit requested")
	// ErrRead is returned when the input stream fails.
	ErrRead = errors.New("failed to read input")
	// ErrClosed is returned when a closed session is used.
	ErrClosed = errors.New("session is closed")
)

// Options configures a new Session.
type Options struct {
	Name         string         // Program name used in error messages.
	Input        io.Reader      // Source of command lines.
	Interactive  bool           // Show prompts and keep going after failures.
	InputPrompts bool           // Input shows its own prompt, e.g. a line editor.
	Config       *config.Config // Settings, config.Default() when nil.
	Environ      []string       // Initial environment, os.Environ() when nil.
	NoHistory    bool           // Do not load or save the history file.
	Stdin        *os.File
	Stdout       *os.File
	Stderr       *os.File
	Fs           afero.Fs // Filesystem used for command lookup.
	Pid          int      // Value of $$, os.Getpid() when zero.
}

// Session is the state of one shell run. It is not safe for concurrent use,
// apart from Interrupt.
type Session struct {
	Name        string
	Env         *environ.Store
	Aliases     *alias.Store
	History     *history.Store
	Config      *config.Config
	HistoryPath string // Empty when history is not persisted.

	Status    int      // Exit status of the last command.
	ExitCode  int      // Pending process exit code, set by exit.
	LineCount int      // Number of lines read.
	Argv      []string // Token vector of the command being run.
	Splitter  chain.Splitter

	Interactive  bool
	inputPrompts bool
	Pid          int

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	Fs     afero.Fs

	input    *lineread.Reader
	exiting  bool
	running  atomic.Bool
	closed   bool
	builtins []entry
}

// New creates a session: the environment is copied, configured aliases are
// defined and the history file is loaded.
func New(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := opts.Environ
	if env == nil {
		env = os.Environ()
	}

	s := &Session{
		Name:         opts.Name,
		Env:          environ.New(env),
		Aliases:      &alias.Store{},
		History:      history.New(cfg.HistoryMax),
		Config:       cfg,
		Interactive:  opts.Interactive,
		inputPrompts: opts.InputPrompts,
		Pid:          opts.Pid,
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		Fs:           opts.Fs,
		builtins:     builtinTable,
	}

	if s.Name == "" {
		s.Name = "hsh"
	}

	if s.Pid == 0 {
		s.Pid = os.Getpid()
	}

	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}

	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}

	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}

	if s.Fs == nil {
		s.Fs = afero.NewOsFs()
	}

	in := opts.Input
	if in == nil {
		in = s.Stdin
	}

	s.input = lineread.NewReader(in)

	for _, def := range cfg.Aliases {
		if err := s.Aliases.Define(def); err != nil {
			return nil, fmt.Errorf("alias %q: %w", def, err)
		}
	}

	if home := s.Env.Get("HOME"); home != "" && !opts.NoHistory {
		s.HistoryPath = cfg.HistoryPath(home)

		if err := s.History.Load(ctx, history.FsFactory(), s.HistoryPath); err != nil {
			// A broken history file must not prevent the shell from starting.
			ctxlog.Warn(ctx, "history not loaded", "path", s.HistoryPath, "error", err)
		}
	}

	ctxlog.Debug(ctx, "session created",
		"interactive", s.Interactive,
		"history", s.HistoryPath,
		"aliases", s.Aliases.Len(),
	)

	return s, nil
}

// Close persists the history and clears every store.
// All failures are returned together; the session cannot be used afterwards.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}

	s.closed = true

	var result error

	if s.HistoryPath != "" {
		if err := s.History.Save(ctx, history.FsFactory(), s.HistoryPath); err != nil {
			result = multierror.Append(result, err)
		}
	}

	s.History.Clear()
	s.Env.Clear()
	s.Aliases.Clear()
	s.Argv = nil
	s.Splitter.Load("")

	ctxlog.Debug(ctx, "session closed", "status", s.Status, "exitCode", s.ExitCode)

	return result
}

// Interrupt handles SIGINT outside the line editor: the in-progress line is
// abandoned visually and a fresh prompt is shown. While a foreground command
// runs the signal belongs to the child, so nothing is printed.
func (s *Session) Interrupt() {
	if !s.Interactive || s.running.Load() {
		return
	}

	if s.inputPrompts {
		return
	}

	fmt.Fprint(s.Stdout, "\n"+s.Config.Prompt) //nolint:errcheck
}

// Prompt returns the configured prompt.
func (s *Session) Prompt() string {
	return s.Config.Prompt
}
