// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/matt-FFFFFF/hsh/internal/config"
	"github.com/matt-FFFFFF/hsh/internal/history"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLineChaining(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantSet    []string
		wantUnset  []string
		wantStatus int
	}{
		{
			name:       "or runs after not found",
			line:       "false_cmd || setenv OK yes",
			wantSet:    []string{"OK=yes"},
			wantStatus: 0,
		},
		{
			name:       "and stops after failure",
			line:       "false_cmd && setenv NO 1 && setenv NO2 1",
			wantUnset:  []string{"NO", "NO2"},
			wantStatus: 127,
		},
		{
			name:       "and continues after success",
			line:       "setenv A 1 && setenv B 2",
			wantSet:    []string{"A=1", "B=2"},
			wantStatus: 0,
		},
		{
			name:       "or skips after success",
			line:       "setenv A 1 || setenv B 2",
			wantSet:    []string{"A=1"},
			wantUnset:  []string{"B"},
			wantStatus: 0,
		},
		{
			name:       "sequence ignores status",
			line:       "false_cmd; setenv A 1",
			wantSet:    []string{"A=1"},
			wantStatus: 0,
		},
		{
			name:       "status reaches variable expansion",
			line:       "false_cmd; setenv S $?",
			wantSet:    []string{"S=127"},
			wantStatus: 0,
		},
		{
			name:       "pid expansion",
			line:       "setenv P $$",
			wantSet:    []string{"P=4242"},
			wantStatus: 0,
		},
		{
			name:       "unset variable expands to empty",
			line:       "setenv E x$UNSET_VAR; setenv F $UNSET_VAR",
			wantSet:    []string{"E=x$UNSET_VAR", "F="},
			wantStatus: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestSession(t, "")

			require.NoError(t, ts.run(t, tc.line))
			assert.Equal(t, tc.wantStatus, ts.Status)

			entries := ts.Env.Entries()
			for _, want := range tc.wantSet {
				assert.Contains(t, entries, want)
			}

			for _, name := range tc.wantUnset {
				_, ok := ts.Env.Lookup(name)
				assert.False(t, ok, "%s should not be set", name)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	ts := newTestSession(t, "setenv A 1\nnope arg\n")

	code, err := ts.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 127, code, "non-interactive sessions exit with the last failing status")
	assert.Equal(t, "hsh: 2: nope: not found\n", ts.errOut(t))
}

func TestSetenvReplaces(t *testing.T) {
	ts := newTestSession(t, "", withEnviron())

	require.NoError(t, ts.run(t, "setenv FOO 1; setenv FOO 2"))

	assert.Equal(t, []string{"FOO=2"}, ts.Env.Entries())
}

func TestAliasCycleTerminates(t *testing.T) {
	ts := newTestSession(t, "")

	require.NoError(t, ts.run(t, "alias ll=ll; ll"))

	assert.Equal(t, 127, ts.Status)
	assert.Equal(t, []string{"ll"}, ts.Argv)
	assert.Contains(t, ts.errOut(t), "ll: not found")
}

func TestAliasExpandsToBuiltin(t *testing.T) {
	ts := newTestSession(t, "")

	require.NoError(t, ts.run(t, "alias se='setenv'"))
	require.NoError(t, ts.run(t, "se X 1"))

	assert.Equal(t, "1", ts.Env.Get("X"))
}

func TestExit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
		wantErr  string
		notSet   string
	}{
		{name: "explicit code", input: "setenv A 1\nexit 7\nsetenv B 1\n", wantCode: 7, notSet: "B"},
		{name: "leading plus", input: "exit +3\n", wantCode: 3},
		{name: "no argument uses status", input: "nope\nexit\n", wantCode: 127, wantErr: "hsh: 1: nope: not found\n"},
		{name: "exit in a chain stops the line", input: "exit 4; setenv B 1\n", wantCode: 4, notSet: "B"},
		{name: "illegal number continues", input: "exit abc\nsetenv B 1\n", wantCode: 0, wantErr: "hsh: 1: exit: Illegal Number: abc\n"},
		{name: "illegal number is the final status", input: "exit -1\n", wantCode: 2, wantErr: "hsh: 1: exit: Illegal Number: -1\n"},
		{name: "too large", input: "exit 2147483648\n", wantCode: 2, wantErr: "hsh: 1: exit: Illegal Number: 2147483648\n"},
		{name: "end of input", input: "setenv A 1\n", wantCode: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestSession(t, tc.input)

			code, err := ts.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, ts.errOut(t))

			if tc.notSet != "" {
				_, ok := ts.Env.Lookup(tc.notSet)
				assert.False(t, ok)
			}
		})
	}
}

func TestInteractiveEndOfInputExitsZero(t *testing.T) {
	ts := newTestSession(t, "nope\n", interactive())

	code, err := ts.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, code)
	assert.Equal(t, "$ $ \n", ts.out(t))
}

func TestInputPromptsSuppressesPrompt(t *testing.T) {
	ts := newTestSession(t, "setenv A 1\n", interactive(), func(o *Options) { o.InputPrompts = true })

	_, err := ts.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "\n", ts.out(t))
}

func TestCommentsAndHistory(t *testing.T) {
	ts := newTestSession(t, "# only a comment\nsetenv A 1 # trailing\n\nhistory\n")

	_, err := ts.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1", ts.Env.Get("A"))
	assert.Equal(t, []string{"setenv A 1 ", "history"}, ts.History.Entries())
	assert.Equal(t, "0: setenv A 1 \n1: history\n", ts.out(t))
	assert.Equal(t, 4, ts.LineCount)
}

func TestRunCancelled(t *testing.T) {
	ts := newTestSession(t, "setenv A 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := ts.Env.Lookup("A")
	assert.False(t, ok)
}

func TestRunLineCancelledBetweenSegments(t *testing.T) {
	ts := newTestSession(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ts.RunLine(ctx, "setenv A 1; setenv B 2")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ts.Splitter.Pending())
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("device gone")
	ts := newTestSession(t, "", func(o *Options) { o.Input = iotest.ErrReader(boom) })

	_, err := ts.Run(context.Background())
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, boom)
}

func TestNewLoadsHistoryAndAliases(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testHome+"/.simple_shell_history", []byte("one\ntwo\n"), 0o644))

	cfg := config.Default()
	cfg.Aliases = []string{"se=setenv"}

	ts := newTestSessionWithHistory(t, "", fs, func(o *Options) { o.Config = cfg })

	assert.Equal(t, testHome+"/.simple_shell_history", ts.HistoryPath)
	assert.Equal(t, []string{"one", "two"}, ts.History.Entries())
	assert.Equal(t, 2, ts.History.Count())

	v, ok := ts.Aliases.Lookup("se")
	assert.True(t, ok)
	assert.Equal(t, "setenv", v)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryMax = 0

	_, err := New(context.Background(), Options{Config: cfg, Environ: []string{}})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNoHistoryWithoutHome(t *testing.T) {
	ts := newTestSession(t, "", withEnviron("PATH=/bin"))
	assert.Empty(t, ts.HistoryPath)

	ts = newTestSession(t, "", func(o *Options) { o.NoHistory = true })
	assert.Empty(t, ts.HistoryPath)
}

func TestCloseSavesHistory(t *testing.T) {
	ts := newTestSession(t, "setenv A 1\nsetenv B 2\n")

	_, err := ts.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, ts.Close(context.Background()))

	data, err := afero.ReadFile(ts.histFs, testHome+"/.simple_shell_history")
	require.NoError(t, err)
	assert.Equal(t, "setenv A 1\nsetenv B 2\n", string(data))

	assert.Equal(t, 0, ts.Env.Len())
	assert.Equal(t, 0, ts.History.Len())

	assert.ErrorIs(t, ts.Close(context.Background()), ErrClosed)

	_, err = ts.Run(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseReportsSaveFailure(t *testing.T) {
	ts := newTestSession(t, "")

	stubs := gostub.Stub(&history.FsFactory, func() afero.Fs {
		return afero.NewReadOnlyFs(afero.NewMemMapFs())
	})
	defer stubs.Reset()

	err := ts.Close(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, history.ErrSave)
}

func TestInterrupt(t *testing.T) {
	ts := newTestSession(t, "", interactive())
	ts.Interrupt()
	assert.Equal(t, "\n$ ", ts.out(t))

	ts = newTestSession(t, "")
	ts.Interrupt()
	assert.Empty(t, ts.out(t), "nothing is printed when not interactive")

	ts = newTestSession(t, "", interactive())
	ts.running.Store(true)
	ts.Interrupt()
	assert.Empty(t, ts.out(t), "nothing is printed while a command runs")
}
