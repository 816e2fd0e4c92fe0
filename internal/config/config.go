// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional YAML settings file for the shell.
//
// Example:
//
//	prompt: "hsh> "
//	history_file: .simple_shell_history
//	history_max: 4096
//	strict_exec_check: false
//	aliases:
//	  - ll=ls -l
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/hsh/internal/ctxlog"
	"github.com/matt-FFFFFF/hsh/internal/history"
	"github.com/spf13/afero"
)

// DefaultFile is looked up in the home directory when no file is given.
const DefaultFile = ".hshrc.yaml"

var (
	// ErrRead is returned when the configuration file cannot be read.
	ErrRead = errors.New("failed to read configuration file")
	// ErrDecode is returned when the configuration file is not valid YAML
	// or contains unknown fields.
	ErrDecode = errors.New("failed to decode configuration file")
	// ErrInvalid is returned when a decoded value fails validation.
	ErrInvalid = errors.New("invalid configuration")
)

// FsFactory returns the filesystem configuration files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config holds the shell settings.
type Config struct {
	Prompt          string   `yaml:"prompt"`
	HistoryFile     string   `yaml:"history_file"`
	HistoryMax      int      `yaml:"history_max"`
	StrictExecCheck bool     `yaml:"strict_exec_check"`
	Aliases         []string `yaml:"aliases"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Prompt:      "$ ",
		HistoryFile: history.DefaultFile,
		HistoryMax:  history.DefaultMax,
	}
}

// Validate checks every field and returns all violations together.
func (c *Config) Validate() error {
	var result error

	if c.HistoryFile == "" {
		result = multierror.Append(result, fmt.Errorf("%w: history_file must not be empty", ErrInvalid))
	}

	if c.HistoryMax < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: history_max must be greater than 0, got %d", ErrInvalid, c.HistoryMax))
	}

	for i, a := range c.Aliases {
		name, _, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			result = multierror.Append(result, fmt.Errorf("%w: aliases[%d] %q must be in name=value form", ErrInvalid, i, a))
		}
	}

	return result
}

// HistoryPath returns the history file location for the given home directory.
// An absolute history_file is used as is.
func (c *Config) HistoryPath(home string) string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}

	return filepath.Join(home, c.HistoryFile)
}

// Load reads the file at path over the defaults.
// When path is empty, DefaultFile in home is used if it exists; otherwise the
// defaults are returned.
func Load(ctx context.Context, path, home string) (*Config, error) {
	afs := FsFactory()
	explicit := path != ""

	if !explicit {
		if home == "" {
			return Default(), nil
		}

		path = filepath.Join(home, DefaultFile)
	}

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			ctxlog.Debug(ctx, "no configuration file", "path", path)
			return Default(), nil
		}

		return nil, errors.Join(ErrRead, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ctxlog.Info(ctx, "configuration loaded", "path", path)

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
