// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Diagnostics are written to stderr so they never mix with command output.
// The level is read from HSH_LOG_LEVEL (DEBUG, INFO, WARN or ERROR) and
// defaults to WARN. The default handler is a pretty console handler.
package ctxlog
