// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/hsh/internal/history"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testHome = "/home/tester"

// testSession wraps a Session whose standard streams are temporary files.
type testSession struct {
	*Session
	stdout *os.File
	stderr *os.File
	histFs afero.Fs
	pathFs afero.Fs
}

type testOption func(*Options)

func withEnviron(env ...string) testOption {
	return func(o *Options) { o.Environ = append([]string{}, env...) }
}

func withOsFs() testOption {
	return func(o *Options) { o.Fs = afero.NewOsFs() }
}

func interactive() testOption {
	return func(o *Options) { o.Interactive = true }
}

// newTestSession creates a session reading input. History goes to an
// in-memory filesystem and command lookup uses an empty one unless
// withOsFs is given.
func newTestSession(t *testing.T, input string, opts ...testOption) *testSession {
	t.Helper()

	return newTestSessionWithHistory(t, input, afero.NewMemMapFs(), opts...)
}

// newTestSessionWithHistory is newTestSession with a prepared history filesystem.
func newTestSessionWithHistory(t *testing.T, input string, histFs afero.Fs, opts ...testOption) *testSession {
	t.Helper()

	dir := t.TempDir()

	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = stdout.Close() })

	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = stderr.Close() })

	stubs := gostub.Stub(&history.FsFactory, func() afero.Fs { return histFs })
	t.Cleanup(stubs.Reset)

	o := Options{
		Name:    "hsh",
		Input:   strings.NewReader(input),
		Environ: []string{"HOME=" + testHome, "PATH=/usr/bin:/bin"},
		Stdout:  stdout,
		Stderr:  stderr,
		Fs:      afero.NewMemMapFs(),
		Pid:     4242,
	}

	for _, opt := range opts {
		opt(&o)
	}

	s, err := New(context.Background(), o)
	require.NoError(t, err)

	return &testSession{Session: s, stdout: stdout, stderr: stderr, histFs: histFs, pathFs: o.Fs}
}

func (ts *testSession) out(t *testing.T) string {
	t.Helper()

	b, err := os.ReadFile(ts.stdout.Name())
	require.NoError(t, err)

	return string(b)
}

func (ts *testSession) errOut(t *testing.T) string {
	t.Helper()

	b, err := os.ReadFile(ts.stderr.Name())
	require.NoError(t, err)

	return string(b)
}

// run executes a single line as if it were line 1 of the input.
func (ts *testSession) run(t *testing.T, line string) error {
	t.Helper()

	ts.LineCount++

	return ts.RunLine(context.Background(), line)
}
