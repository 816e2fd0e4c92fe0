// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI colour codes when the destination is a
// colour capable terminal. NO_COLOR disables colour and FORCE_COLOR forces it.
package color
