// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package substitute rewrites a token vector before dispatch: alias expansion
// of the command word, then variable expansion of every word.
package substitute

import (
	"slices"
	"strconv"

	"github.com/matt-FFFFFF/hsh/internal/tokenize"
)

// MaxAliasDepth bounds how many times the command word is re-expanded.
// Cyclic aliases stop after this many steps rather than failing.
const MaxAliasDepth = 10

// AliasLookup resolves an alias name to its value.
type AliasLookup interface {
	Lookup(name string) (string, bool)
}

// VarLookup resolves an environment variable.
type VarLookup interface {
	Lookup(name string) (string, bool)
}

// Aliases expands the command word while it names an alias, at most
// MaxAliasDepth times, and returns the resulting vector. A value holding
// several words replaces the command word with all of them. A name is
// expanded at most once per call, so `ls=ls -a` yields `ls -a`.
func Aliases(argv []string, aliases AliasLookup) []string {
	if len(argv) == 0 || aliases == nil {
		return argv
	}

	seen := make(map[string]struct{}, 1)

	for range MaxAliasDepth {
		if _, done := seen[argv[0]]; done {
			break
		}

		v, ok := aliases.Lookup(argv[0])
		if !ok {
			break
		}

		seen[argv[0]] = struct{}{}

		words := tokenize.Fields(v, tokenize.DefaultDelims)
		if len(words) == 0 {
			words = []string{v}
		}

		argv = slices.Concat(words, argv[1:])
	}

	return argv
}

// Variables expands `$?`, `$$` and `$NAME` words in place.
// Unset variables expand to the empty string. A lone `$` is left alone.
func Variables(argv []string, env VarLookup, status, pid int) {
	for i, word := range argv {
		if len(word) < 2 || word[0] != '$' {
			continue
		}

		switch name := word[1:]; name {
		case "?":
			argv[i] = strconv.Itoa(status)
		case "$":
			argv[i] = strconv.Itoa(pid)
		default:
			v := ""
			if env != nil {
				v, _ = env.Lookup(name)
			}

			argv[i] = v
		}
	}
}
