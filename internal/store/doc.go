// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store provides the ordered string list that backs the shell's
// environment, alias and history stores.
//
// Entries are kept in insertion order and searched linearly from the front,
// so the first match always wins. Lookups by key use FindByPrefix with a
// terminator byte, which is how `NAME=` style entries are matched.
package store
