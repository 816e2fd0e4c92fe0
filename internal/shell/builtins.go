// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/hsh/internal/alias"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
)

// Builtin is a command run inside the shell process.
// It reads its arguments from s.Argv and returns the exit status.
type Builtin interface {
	Run(ctx context.Context, s *Session) int
}

// BuiltinFunc adapts a function to the Builtin interface.
type BuiltinFunc func(ctx context.Context, s *Session) int

// Run implements Builtin.
func (f BuiltinFunc) Run(ctx context.Context, s *Session) int {
	return f(ctx, s)
}

type entry struct {
	name string
	cmd  Builtin
}

// builtinTable is searched in order; names are distinct.
var builtinTable = []entry{
	{"exit", BuiltinFunc(exitBuiltin)},
	{"env", BuiltinFunc(envBuiltin)},
	{"printenv", BuiltinFunc(printenvBuiltin)},
	{"help", BuiltinFunc(helpBuiltin)},
	{"history", BuiltinFunc(historyBuiltin)},
	{"setenv", BuiltinFunc(setenvBuiltin)},
	{"unsetenv", BuiltinFunc(unsetenvBuiltin)},
	{"cd", BuiltinFunc(cdBuiltin)},
	{"alias", BuiltinFunc(aliasBuiltin)},
}

// BuiltinNames returns the builtin command names in table order.
func (s *Session) BuiltinNames() []string {
	names := make([]string, 0, len(s.builtins))
	for _, e := range s.builtins {
		names = append(names, e.name)
	}

	return names
}

func (s *Session) builtin(name string) (Builtin, bool) {
	for _, e := range s.builtins {
		if e.name == name {
			return e.cmd, true
		}
	}

	return nil, false
}

// exit [N]
func exitBuiltin(_ context.Context, s *Session) int {
	if len(s.Argv) < 2 {
		s.ExitCode = s.Status
		s.exiting = true

		return s.Status
	}

	n, ok := parseExitArg(s.Argv[1])
	if !ok {
		s.errorf("Illegal Number: %s", s.Argv[1])
		return 2
	}

	s.ExitCode = n
	s.exiting = true

	return n
}

// parseExitArg accepts decimal digits with an optional leading `+`, up to
// the largest 32-bit signed integer.
func parseExitArg(arg string) (int, bool) {
	digits := strings.TrimPrefix(arg, "+")
	if digits == "" {
		return 0, false
	}

	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}

	return int(n), true
}

func envBuiltin(_ context.Context, s *Session) int {
	for _, e := range s.Env.Entries() {
		fmt.Fprintln(s.Stdout, e) //nolint:errcheck
	}

	return 0
}

// printenv [NAME...]
func printenvBuiltin(ctx context.Context, s *Session) int {
	if len(s.Argv) < 2 {
		return envBuiltin(ctx, s)
	}

	status := 0

	for _, name := range s.Argv[1:] {
		v, ok := s.Env.Lookup(name)
		if !ok {
			status = 1
			continue
		}

		fmt.Fprintln(s.Stdout, v) //nolint:errcheck
	}

	return status
}

func helpBuiltin(_ context.Context, s *Session) int {
	fmt.Fprintln(s.Stdout, "Help Functionality Is Underway. Please Check Back Later.") //nolint:errcheck
	fmt.Fprintln(s.Stdout, "Builtins: "+strings.Join(s.BuiltinNames(), " "))           //nolint:errcheck

	return 0
}

func historyBuiltin(_ context.Context, s *Session) int {
	for n, line := range s.History.All() {
		fmt.Fprintf(s.Stdout, "%d: %s\n", n, line) //nolint:errcheck
	}

	return 0
}

// setenv NAME VALUE
func setenvBuiltin(_ context.Context, s *Session) int {
	if len(s.Argv) != 3 {
		s.errorf("Incorrect number of arguments")
		return 1
	}

	if err := s.Env.Set(s.Argv[1], s.Argv[2]); err != nil {
		s.errorf("%s: %v", s.Argv[1], err)
		return 1
	}

	return 0
}

// unsetenv NAME...
func unsetenvBuiltin(_ context.Context, s *Session) int {
	if len(s.Argv) < 2 {
		s.errorf("Too few arguments.")
		return 1
	}

	for _, name := range s.Argv[1:] {
		s.Env.Unset(name)
	}

	return 0
}

// cd [DIR|-]
func cdBuiltin(ctx context.Context, s *Session) int {
	cwd, err := os.Getwd()
	if err != nil {
		ctxlog.Warn(ctx, "getwd failed", "error", err)
	}

	var dir string

	switch {
	case len(s.Argv) < 2:
		dir = firstNonEmpty(s.Env.Get("HOME"), s.Env.Get("PWD"), "/")
	case s.Argv[1] == "-":
		old := s.Env.Get("OLDPWD")
		if old == "" {
			fmt.Fprintln(s.Stdout, cwd) //nolint:errcheck
			return 1
		}

		fmt.Fprintln(s.Stdout, old) //nolint:errcheck

		dir = old
	default:
		dir = s.Argv[1]
	}

	if err := os.Chdir(dir); err != nil {
		ctxlog.Debug(ctx, "chdir failed", "dir", dir, "error", err)
		s.errorf("can't cd to %s", dir)

		return 1
	}

	_ = s.Env.Set("OLDPWD", firstNonEmpty(s.Env.Get("PWD"), cwd))

	if wd, err := os.Getwd(); err == nil {
		_ = s.Env.Set("PWD", wd)
	}

	return 0
}

// alias [NAME | NAME=VALUE | NAME=]...
func aliasBuiltin(_ context.Context, s *Session) int {
	if len(s.Argv) < 2 {
		for _, e := range s.Aliases.Entries() {
			fmt.Fprintln(s.Stdout, alias.Format(e)) //nolint:errcheck
		}

		return 0
	}

	status := 0

	for _, arg := range s.Argv[1:] {
		if strings.ContainsRune(arg, '=') {
			if err := s.Aliases.Define(arg); err != nil {
				s.errorf("%s: %v", arg, err)
				status = 1
			}

			continue
		}

		if v, ok := s.Aliases.Lookup(arg); ok {
			fmt.Fprintln(s.Stdout, alias.Format(arg+"="+v)) //nolint:errcheck
		}
	}

	return status
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}

	return ""
}
