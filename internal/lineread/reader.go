// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lineread reads input one line at a time through a fixed size chunk
// buffer, so that arbitrarily long lines can be assembled without a growing
// bufio buffer. It also provides an io.Reader over an interactive prompt.
package lineread

import (
	"bytes"
	"io"
)

// ChunkSize is the number of bytes requested from the underlying reader per read.
const ChunkSize = 1024

// maxEmptyReads is how many consecutive (0, nil) reads are tolerated before
// ReadLine gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Reader assembles lines from an underlying io.Reader.
type Reader struct {
	r     io.Reader
	chunk [ChunkSize]byte
	pos   int // next unread byte in chunk
	n     int // number of valid bytes in chunk
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadLine returns the next line without its trailing newline.
// A final line with no newline is returned at the end of the input.
// io.EOF is returned only when no more bytes are available.
func (r *Reader) ReadLine() (string, error) {
	var line []byte

	read := false
	empty := 0

	for {
		if r.pos >= r.n {
			r.pos, r.n = 0, 0

			n, err := r.r.Read(r.chunk[:])
			if n > 0 {
				r.n = n
				empty = 0
			}

			if n == 0 {
				if err == nil {
					empty++
					if empty >= maxEmptyReads {
						return "", io.ErrNoProgress
					}

					continue
				}

				if err == io.EOF && read {
					return string(line), nil
				}

				return "", err
			}
		}

		unread := r.chunk[r.pos:r.n]
		k := len(unread)
		nl := bytes.IndexByte(unread, '\n')

		if nl >= 0 {
			k = nl + 1
		}

		// Grow by exactly k bytes, keeping what has been assembled so far.
		grown := make([]byte, len(line)+k)
		copy(grown, line)
		copy(grown[len(line):], unread[:k])
		line = grown
		read = true
		r.pos += k

		if nl >= 0 {
			return string(line[:len(line)-1]), nil
		}
	}
}

// StripComment cuts the line at the first `#` that starts the line or
// follows a blank.
func StripComment(line string) string {
	for i := range len(line) {
		if line[i] != '#' {
			continue
		}

		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}

	return line
}
