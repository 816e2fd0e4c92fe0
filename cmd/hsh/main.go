// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the hsh command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/hsh"
	"github.com/matt-FFFFFF/hsh/internal/config"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "hsh",
		Description: `hsh is a simple command interpreter. It reads commands from the terminal,
a script file or standard input, and runs builtins or programs found in PATH.
Commands may be chained with ';', '&&' and '||'.`,
		Usage:     "hsh [SCRIPT]",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      scriptArg,
				UsageText: "[SCRIPT]",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Read settings from `FILE` instead of $HOME/" + config.DefaultFile,
				TakesFile: true,
				Sources:   cli.EnvVars("HSH_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  noHistoryFlag,
				Usage: "Do not load or save the history file",
			},
			&cli.BoolFlag{
				Name:  logJSONFlag,
				Usage: "Write diagnostic logs as JSON",
			},
		},
		HideHelpCommand: true,
		Action:          actionFunc,
		// The action reports its own errors; main turns exit coders into the process status.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd := newRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", hsh.Version, hsh.Commit)
	programName = os.Args[0]

	os.Exit(exitCode(ctx, rootCmd.Run(ctx, os.Args))) //nolint:gocritic
}

// exitCode maps the result of the root command to a process exit status.
func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	ctxlog.Logger(ctx).Error("command execution failed", "error", err)

	return 1
}
