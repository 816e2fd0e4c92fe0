// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package process

import (
	"os"
	"syscall"
)

func signalled(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}

	return int(ws.Signal()), true
}

func killedBySignal(state *os.ProcessState) bool {
	sig, ok := signalled(state)
	return ok && sig == int(syscall.SIGKILL)
}
