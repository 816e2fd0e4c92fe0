// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package chain splits an input line into command segments separated by
// `;`, `&&` and `||`.
//
// The separator found after a segment is recorded as the chain type and is
// only evaluated when the next segment is requested, against the exit status
// of the segment that just ran.
package chain

import "bytes"

// Type is the separator that followed the most recent segment.
type Type int

const (
	None Type = iota // no separator, or end of line
	Or               // `||`
	And              // `&&`
	Seq              // `;`
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Or:
		return "||"
	case And:
		return "&&"
	case Seq:
		return ";"
	default:
		return "none"
	}
}

// Splitter walks a single line, yielding one segment per call to Next.
// The zero value holds no line.
type Splitter struct {
	buf  []byte
	i    int
	Type Type
}

// Load installs line as the buffer to split. Any unconsumed part of the
// previous line is discarded.
func (s *Splitter) Load(line string) {
	s.buf = nil
	if line != "" {
		s.buf = []byte(line)
	}

	s.i = 0
	s.Type = None
}

// Pending reports whether segments remain in the buffer.
func (s *Splitter) Pending() bool {
	return s.buf != nil
}

// Next returns the next segment, using status to decide whether a pending
// `&&` or `||` allows it to run. ok is false once the buffer is exhausted.
// A skipped remainder yields an empty segment with ok true, which callers
// treat as nothing to run.
func (s *Splitter) Next(status int) (string, bool) {
	if s.buf == nil {
		return "", false
	}

	start := s.i
	end := len(s.buf)

	if s.stop(status) {
		s.buf[start] = 0
		s.i = end
	} else {
		s.i = s.scan(start)
	}

	seg := s.buf[start:]
	if nul := bytes.IndexByte(seg, 0); nul >= 0 {
		seg = seg[:nul]
	}

	out := string(seg)

	if s.i >= end {
		s.buf = nil
		s.i = 0
		s.Type = None
	}

	return out, true
}

// stop reports whether the chain type and status end the line here.
func (s *Splitter) stop(status int) bool {
	if s.i >= len(s.buf) {
		return false
	}

	switch s.Type {
	case And:
		return status != 0
	case Or:
		return status == 0
	default:
		return false
	}
}

// scan classifies the next separator from start, terminates the segment at
// it, and returns the index one past the separator.
func (s *Splitter) scan(start int) int {
	buf := s.buf
	j := start

	for j < len(buf) {
		switch {
		case buf[j] == '|' && j+1 < len(buf) && buf[j+1] == '|':
			buf[j] = 0
			s.Type = Or

			return j + 2
		case buf[j] == '&' && j+1 < len(buf) && buf[j+1] == '&':
			buf[j] = 0
			s.Type = And

			return j + 2
		case buf[j] == ';':
			buf[j] = 0
			s.Type = Seq

			return j + 1
		}

		j++
	}

	s.Type = None

	return j
}
