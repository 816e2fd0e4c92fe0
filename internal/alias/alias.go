// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package alias stores command aliases as `name=value` entries.
// Aliases live for the duration of a session and are not persisted.
package alias

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/hsh/internal/store"
)

// ErrMalformed is returned by Define when the definition has no `=`.
var ErrMalformed = errors.New("alias definition has no '='")

// ErrInvalidName is returned by Define when the name is empty.
var ErrInvalidName = errors.New("alias name is empty")

// Store holds the session's aliases. The zero value is ready to use.
type Store struct {
	list store.List
}

// Define applies one definition:
//   - `name=value` sets name, replacing an existing value in place;
//   - `name=`, `name=''` and `name=""` remove name;
//   - anything without `=` changes nothing and returns ErrMalformed.
//
// A value wrapped in matching single or double quotes is unquoted.
func (s *Store) Define(def string) error {
	name, value, ok := strings.Cut(def, "=")
	if !ok {
		return fmt.Errorf("%w: %s", ErrMalformed, def)
	}

	if name == "" {
		return ErrInvalidName
	}

	value = unquote(value)
	if value == "" {
		s.Unset(name)
		return nil
	}

	entry := name + "=" + value

	if n := s.list.FindByPrefix(name, '='); n != nil {
		n.Str = entry
		return nil
	}

	s.list.Append(entry, 0)

	return nil
}

// Unset removes name and reports whether it was defined.
func (s *Store) Unset(name string) bool {
	n := s.list.FindByPrefix(name, '=')
	if n == nil {
		return false
	}

	return s.list.DeleteAt(s.list.IndexOf(n))
}

// Lookup returns the value of the alias name.
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

// Entries returns every alias as `name=value`, in definition order.
func (s *Store) Entries() []string {
	return s.list.Strings()
}

// Len returns the number of aliases.
func (s *Store) Len() int {
	return s.list.Len()
}

// Clear removes every alias.
func (s *Store) Clear() {
	s.list.Clear()
}

// Format renders a `name=value` entry for display as `name='value'`.
func Format(entry string) string {
	name, value, _ := strings.Cut(entry, "=")
	return name + "='" + value + "'"
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}

	if q := v[0]; (q == '\'' || q == '"') && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}

	return v
}
