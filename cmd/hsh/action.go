// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/hsh/internal/config"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/lineread"
	"github.com/matt-FFFFFF/hsh/internal/process"
	"github.com/matt-FFFFFF/hsh/internal/shell"
	"github.com/matt-FFFFFF/hsh/internal/signalbroker"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	scriptArg     = "script"
	configFlag    = "config"
	noHistoryFlag = "no-history"
	logJSONFlag   = "log-json"
)

// exitUsage is the status for failures before the first line is read.
const exitUsage = 2

// programName prefixes user-facing error messages. main sets it to os.Args[0].
var programName = "hsh"

// Standard streams handed to the session and its child processes.
var (
	stdin  = os.Stdin
	stdout = os.Stdout
	stderr = os.Stderr
)

// lineEditor reports whether the terminal supports the line editor.
var lineEditor = liner.TerminalSupported

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool(logJSONFlag) {
		ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(ctx, cmd.String(configFlag), os.Getenv("HOME"))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err) //nolint:errcheck
		return cli.Exit("", exitUsage)
	}

	opts := shell.Options{
		Name:      programName,
		Config:    cfg,
		NoHistory: cmd.Bool(noHistoryFlag),
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
	}

	var editor *liner.State

	if script := cmd.StringArg(scriptArg); script != "" {
		f, err := os.Open(script)
		if err != nil {
			return scriptOpenFailed(ctx, script, err)
		}
		defer f.Close() //nolint:errcheck

		opts.Input = f
	} else {
		opts.Interactive = term.IsTerminal(int(stdin.Fd()))

		if opts.Interactive && lineEditor() {
			editor = liner.NewLiner()
			defer editor.Close() //nolint:errcheck

			editor.SetCtrlCAborts(true)

			opts.Input = lineread.NewPromptReader(editor, func() string { return cfg.Prompt })
			opts.InputPrompts = true
		}
	}

	s, err := shell.New(ctx, opts)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err) //nolint:errcheck
		return cli.Exit("", exitUsage)
	}

	if editor != nil {
		seedEditorHistory(ctx, editor, s.History.Entries())
	}

	intCh := signalbroker.New(ctx, os.Interrupt)
	defer signalbroker.Stop(intCh)

	go signalbroker.OnInterrupt(ctx, intCh, func(os.Signal) { s.Interrupt() })

	code, runErr := s.Run(ctx)

	var result error

	if runErr != nil {
		result = multierror.Append(result, runErr)
	}

	if err := s.Close(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	if result != nil {
		ctxlog.Error(ctx, "shell finished with errors", "error", result)

		if code == 0 {
			code = 1
		}
	}

	if code == 0 {
		return nil
	}

	return cli.Exit("", code)
}

// scriptOpenFailed reports a script that cannot be opened. A permission
// failure exits 126 silently; a missing file is reported and exits 127.
func scriptOpenFailed(ctx context.Context, script string, err error) error {
	ctxlog.Debug(ctx, "cannot open script", "script", script, "error", err)

	switch {
	case errors.Is(err, fs.ErrPermission):
		return cli.Exit("", process.StatusCannotExecute)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(stderr, "%s: 0: Can't open %s\n", programName, script) //nolint:errcheck
		return cli.Exit("", process.StatusNotFound)
	default:
		fmt.Fprintf(stderr, "%s: 0: Can't open %s: %v\n", programName, script, err) //nolint:errcheck
		return cli.Exit("", 1)
	}
}

// seedEditorHistory makes the loaded history reachable with the arrow keys.
func seedEditorHistory(ctx context.Context, editor *liner.State, entries []string) {
	if len(entries) == 0 {
		return
	}

	n, err := editor.ReadHistory(strings.NewReader(strings.Join(entries, "\n") + "\n"))
	if err != nil {
		ctxlog.Warn(ctx, "line editor history not seeded", "error", err)
		return
	}

	ctxlog.Debug(ctx, "line editor history seeded", "entries", n)
}
