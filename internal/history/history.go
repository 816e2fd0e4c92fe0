// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history keeps the lines entered in a session and persists them to
// a plain text file, one entry per line.
package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"

	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/store"
	"github.com/spf13/afero"
)

// DefaultMax is the default number of entries kept.
const DefaultMax = 4096

// DefaultFile is the default history file name, relative to the home directory.
const DefaultFile = ".simple_shell_history"

const filePerm = 0o644

var (
	// ErrLoad is returned when the history file exists but cannot be read.
	ErrLoad = errors.New("failed to load history")
	// ErrSave is returned when the history file cannot be written.
	ErrSave = errors.New("failed to save history")
)

// Store is a capped, numbered list of history entries.
type Store struct {
	list  store.List
	max   int
	count int
}

// New creates an empty store holding at most limit entries.
// A limit below 1 uses DefaultMax.
func New(limit int) *Store {
	if limit < 1 {
		limit = DefaultMax
	}

	return &Store{max: limit}
}

// Max returns the capacity of the store.
func (s *Store) Max() int {
	return s.max
}

// Count returns the sequence number the next entry will receive.
func (s *Store) Count() int {
	return s.count
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	return s.list.Len()
}

// Add appends line with the next sequence number, evicting the oldest
// entries beyond the cap. Empty lines are not recorded.
func (s *Store) Add(line string) {
	if line == "" {
		return
	}

	s.list.Append(line, s.count)
	s.count++
	s.evict()
}

// Entries returns the history lines, oldest first.
func (s *Store) Entries() []string {
	return s.list.Strings()
}

// All iterates over the entries, yielding each sequence number and line.
func (s *Store) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, n := range s.list.All() {
			if !yield(n.Num, n.Str) {
				return
			}
		}
	}
}

// Clear removes every entry and resets the sequence number.
func (s *Store) Clear() {
	s.list.Clear()
	s.count = 0
}

// Load replaces the store contents with the lines of the file at path.
// A missing file is not an error. Only the newest entries up to the cap are
// kept, and entries are renumbered from 0.
func (s *Store) Load(ctx context.Context, afs afero.Fs, path string) error {
	fi, err := afs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ctxlog.Debug(ctx, "history file not found", "path", path)
			return nil
		}

		return errors.Join(ErrLoad, err)
	}

	if !fi.Mode().IsRegular() {
		return errors.Join(ErrLoad, fmt.Errorf("%s is not a regular file", path))
	}

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return errors.Join(ErrLoad, err)
	}

	s.list.Clear()

	lines := bytes.Split(data, []byte{'\n'})
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	for i, l := range lines {
		s.list.Append(string(l), i)
	}

	s.evict()
	s.count = s.list.Renumber()

	ctxlog.Debug(ctx, "history loaded", "path", path, "entries", s.count)

	return nil
}

// Save truncates the file at path and writes every entry, newline terminated.
func (s *Store) Save(ctx context.Context, afs afero.Fs, path string) error {
	f, err := afs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return errors.Join(ErrSave, err)
	}

	var buf bytes.Buffer
	for _, n := range s.list.All() {
		buf.WriteString(n.Str)
		buf.WriteByte('\n')
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return errors.Join(ErrSave, err)
	}

	if err := f.Close(); err != nil {
		return errors.Join(ErrSave, fmt.Errorf("closing %s: %w", path, err))
	}

	ctxlog.Debug(ctx, "history saved", "path", path, "entries", s.Len())

	return nil
}

func (s *Store) evict() {
	for excess := s.list.Len() - s.max; excess > 0; excess-- {
		s.list.DeleteAt(0)
	}
}
