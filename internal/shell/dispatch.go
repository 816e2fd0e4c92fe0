// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/hsh/internal/commands/commandinpath"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/process"
)

// dispatch runs s.Argv as a builtin or an external program and records the
// exit status.
func (s *Session) dispatch(ctx context.Context) error {
	name := s.Argv[0]
	logger := ctxlog.Logger(ctx).With("command", name, "line", s.LineCount)

	if b, ok := s.builtin(name); ok {
		logger.Debug("builtin")

		s.Status = b.Run(ctx, s)

		if s.exiting {
			logger.Debug("exit requested", "exitCode", s.ExitCode)
			return ErrExit
		}

		return nil
	}

	path, err := commandinpath.Lookup(s.Fs, s.Env.Get("PATH"), name, s.Config.StrictExecCheck)
	if err != nil {
		logger.Debug("command not resolved", "error", err)
		s.errorf("not found")
		s.Status = process.StatusNotFound

		return nil
	}

	logger.Debug("resolved", "path", path)

	cmd := &process.Command{
		Path:   path,
		Args:   s.Argv,
		Env:    s.Env.Environ(),
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}

	s.running.Store(true)
	status, err := cmd.Run(ctx)
	s.running.Store(false)

	s.Status = status

	switch {
	case errors.Is(err, process.ErrCouldNotStartProcess) && status == process.StatusCannotExecute:
		s.errorf("Permission denied")
	case errors.Is(err, process.ErrCouldNotStartProcess):
		s.errorf("not found")
	case err != nil:
		logger.Info("command ended abnormally", "status", status, "error", err)
	}

	return nil
}

// errorf reports a user error for the current command as
// `<prog>: <line>: <cmd>: <msg>`.
func (s *Session) errorf(format string, args ...any) {
	cmd := ""
	if len(s.Argv) > 0 {
		cmd = s.Argv[0]
	}

	fmt.Fprintf(s.Stderr, "%s: %d: %s: %s\n", s.Name, s.LineCount, cmd, fmt.Sprintf(format, args...)) //nolint:errcheck
}
