// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves a command name to a file using a PATH string.
package commandinpath

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/hsh/internal/tokenize"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when no candidate file is accepted.
var ErrNotFound = errors.New("not found")

// Lookup returns the path of command.
//
// A command containing a slash is checked as given. Otherwise each entry of
// pathEnv is tried in order; an empty entry means the command is looked up
// relative to the working directory.
//
// A candidate is accepted when it is a regular file. With strict set it must
// also have an execute bit (ignored on Windows).
func Lookup(fs afero.Fs, pathEnv, command string, strict bool) (string, error) {
	if command == "" {
		return "", ErrNotFound
	}

	if strings.ContainsRune(command, '/') {
		if accept(fs, command, strict) {
			return command, nil
		}

		return "", ErrNotFound
	}

	for _, dir := range tokenize.Split(pathEnv, byte(os.PathListSeparator)) {
		candidate := command
		if dir != "" {
			candidate = filepath.Join(dir, command)
		}

		if accept(fs, candidate, strict) {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

func accept(fs afero.Fs, path string, strict bool) bool {
	info, err := fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if strict && runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return false
	}

	return true
}
