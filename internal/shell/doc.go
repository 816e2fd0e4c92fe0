// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell is the read-eval loop.
//
// A Session reads a line, splits it into chained segments, expands aliases
// and variables, and dispatches each segment to a builtin or an external
// program. The exit status of every segment decides whether the next one
// after `&&` or `||` runs.
//
// Sessions are created with New and torn down with Close, which persists the
// history. The exit builtin makes Run return instead of ending the process so
// that Close always runs first.
package shell
