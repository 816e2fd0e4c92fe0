// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package process

import "os"

func signalled(_ *os.ProcessState) (int, bool) {
	return 0, false
}

// killedBySignal cannot tell a kill from an exit code here, so a delivered
// kill is trusted.
func killedBySignal(_ *os.ProcessState) bool {
	return true
}
