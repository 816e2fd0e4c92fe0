// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package history

import "github.com/spf13/afero"

// FsFactory returns the filesystem the history file is read from and written to.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
