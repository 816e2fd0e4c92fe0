// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tokenize splits command segments into words.
// There is no quoting or escaping: a word is any run of non-delimiter bytes.
package tokenize

import "strings"

// DefaultDelims separates the words of a command.
const DefaultDelims = " \t"

// Fields splits s on any byte in delims, dropping empty words.
// An empty delims uses DefaultDelims. It returns nil when s has no words.
func Fields(s, delims string) []string {
	if delims == "" {
		delims = DefaultDelims
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r < 0x80 && strings.IndexByte(delims, byte(r)) >= 0
	})

	if len(words) == 0 {
		return nil
	}

	return words
}

// Split splits s on every occurrence of delim. Adjacent delimiters produce
// empty elements, which is significant for PATH where an empty entry means
// the current directory.
func Split(s string, delim byte) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, string(delim))
}
