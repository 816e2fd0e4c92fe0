// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process runs an external program in the foreground and reports its
// exit status the way a shell does.
package process

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
)

// Exit statuses for processes that never ran.
const (
	StatusCannotExecute = 126
	StatusNotFound      = 127
	signalBase          = 128
)

var (
	// ErrCouldNotStartProcess is returned when the program could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrKilled is returned when the process was killed because the context was cancelled.
	ErrKilled = errors.New("process killed")
)

// Command is a program to run with the shell's standard streams.
type Command struct {
	Path   string   // Resolved program path.
	Args   []string // Full argument vector, Args[0] is the name as typed.
	Env    []string // Environment in NAME=value form.
	Dir    string   // Working directory, empty for the current one.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Run starts the program and blocks until it exits.
//
// The returned status is the exit code, or 128 plus the signal number when the
// process was terminated by a signal. If the program cannot be started the
// status is 126 for a permission failure and 127 otherwise, and the error
// wraps ErrCouldNotStartProcess. Cancelling ctx kills the process.
func (c *Command) Run(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx).With("path", c.Path)
	logger.Debug("starting process", "args", c.Args)

	ps, err := os.StartProcess(c.Path, c.Args, &os.ProcAttr{
		Dir:   c.Dir,
		Env:   c.Env,
		Files: []*os.File{orDefault(c.Stdin, os.Stdin), orDefault(c.Stdout, os.Stdout), orDefault(c.Stderr, os.Stderr)},
	})
	if err != nil {
		logger.Debug("process start failed", "error", err)

		status := StatusNotFound
		if errors.Is(err, fs.ErrPermission) {
			status = StatusCannotExecute
		}

		return status, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	killed := make(chan struct{})
	watchdogDone := make(chan struct{})

	go func() {
		defer close(watchdogDone)

		select {
		case <-ctx.Done():
			select {
			case <-done:
				return
			default:
			}

			logger.Info("context done, killing process", "pid", ps.Pid)

			if killPs(ctx, ps) {
				close(killed)
			}
		case <-done:
		}
	}()

	state, waitErr := ps.Wait()

	close(done)
	<-watchdogDone

	if waitErr != nil {
		return StatusNotFound, waitErr
	}

	status := exitStatus(state)
	logger.Debug("process finished", "pid", ps.Pid, "status", status)

	select {
	case <-killed:
		if killedBySignal(state) {
			return status, errors.Join(ErrKilled, context.Cause(ctx))
		}

		logger.Debug("process exited before the kill signal", "pid", ps.Pid)
	default:
	}

	return status, nil
}

func exitStatus(state *os.ProcessState) int {
	if sig, ok := signalled(state); ok {
		return signalBase + sig
	}

	return state.ExitCode()
}

// killPs reports whether the kill signal was delivered. A process that has
// already been reaped is left alone.
func killPs(ctx context.Context, ps *os.Process) bool {
	err := ps.Kill()
	if err == nil {
		return true
	}

	if errors.Is(err, os.ErrProcessDone) {
		ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
		return false
	}

	ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

	return false
}

func orDefault(f, def *os.File) *os.File {
	if f == nil {
		return def
	}

	return f
}
