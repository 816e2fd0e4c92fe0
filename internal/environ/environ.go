// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package environ holds the shell's environment variables as an ordered list
// of `NAME=value` entries.
//
// The flattened `[]string` form handed to child processes is cached and only
// rebuilt after the store has been modified.
package environ

import (
	"errors"
	"strings"

	"github.com/matt-FFFFFF/hsh/internal/store"
)

// ErrInvalidName is returned when a variable name is empty or contains `=`.
var ErrInvalidName = errors.New("invalid variable name")

// Store is an ordered environment. The zero value is an empty environment.
type Store struct {
	list    store.List
	dirty   bool
	environ []string
}

// New creates a store populated from entries in `NAME=value` form,
// typically os.Environ().
func New(entries []string) *Store {
	s := &Store{dirty: true}
	for _, e := range entries {
		s.list.Append(e, 0)
	}

	return s
}

// Lookup returns the value of name and whether it is set.
func (s *Store) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	n := s.list.FindByPrefix(name, '=')
	if n == nil {
		return "", false
	}

	return n.Str[len(name)+1:], true
}

// Get returns the value of name, or the empty string when it is not set.
func (s *Store) Get(name string) string {
	v, _ := s.Lookup(name)
	return v
}

// Set adds name or replaces its value in place.
func (s *Store) Set(name, value string) error {
	if name == "" || strings.ContainsRune(name, '=') {
		return ErrInvalidName
	}

	entry := name + "=" + value
	s.dirty = true

	if n := s.list.FindByPrefix(name, '='); n != nil {
		n.Str = entry
		return nil
	}

	s.list.Append(entry, 0)

	return nil
}

// Unset removes every entry for name and reports whether anything was removed.
func (s *Store) Unset(name string) bool {
	if name == "" {
		return false
	}

	removed := false

	for n := s.list.FindByPrefix(name, '='); n != nil; n = s.list.FindByPrefix(name, '=') {
		if !s.list.DeleteAt(s.list.IndexOf(n)) {
			break
		}

		removed = true
	}

	if removed {
		s.dirty = true
	}

	return removed
}

// Entries returns the entries in insertion order.
func (s *Store) Entries() []string {
	return s.list.Strings()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return s.list.Len()
}

// Dirty reports whether the flattened environment needs rebuilding.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Environ returns the flattened environment for process creation.
// The slice is cached until the next Set or Unset and must not be modified.
func (s *Store) Environ() []string {
	if s.dirty || s.environ == nil {
		s.environ = s.list.Strings()
		if s.environ == nil {
			s.environ = []string{}
		}
		s.dirty = false
	}

	return s.environ
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.list.Clear()
	s.environ = nil
	s.dirty = true
}
