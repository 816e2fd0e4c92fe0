// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lineread

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()

	var lines []string

	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines
		}

		require.NoError(t, err)

		lines = append(lines, line)
	}
}

func TestReadLine(t *testing.T) {
	long := strings.Repeat("x", ChunkSize*3+17)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty input", input: "", want: nil},
		{name: "single line", input: "ls -l\n", want: []string{"ls -l"}},
		{name: "several lines in one chunk", input: "a\nb\nc\n", want: []string{"a", "b", "c"}},
		{name: "final line without newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "empty lines kept", input: "\n\na\n", want: []string{"", "", "a"}},
		{name: "line spanning chunks", input: long + "\nnext\n", want: []string{long, "next"}},
		{name: "newline on chunk boundary", input: strings.Repeat("y", ChunkSize-1) + "\nz\n", want: []string{strings.Repeat("y", ChunkSize-1), "z"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tc.input))
			assert.Equal(t, tc.want, readAll(t, r))
		})
	}
}

func TestReadLineOneByteReads(t *testing.T) {
	r := NewReader(iotest.OneByteReader(strings.NewReader("echo hi\nexit 3")))
	assert.Equal(t, []string{"echo hi", "exit 3"}, readAll(t, r))
}

func TestReadLineDataWithEOF(t *testing.T) {
	r := NewReader(iotest.DataErrReader(strings.NewReader("one\ntwo")))
	assert.Equal(t, []string{"one", "two"}, readAll(t, r))
}

func TestReadLineError(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(iotest.ErrReader(boom))

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, boom)
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "# whole line", want: ""},
		{in: "echo hi # trailing", want: "echo hi "},
		{in: "echo hi\t# tab", want: "echo hi\t"},
		{in: "echo a#b", want: "echo a#b"},
		{in: "echo a#b #c", want: "echo a#b "},
		{in: "no comment", want: "no comment"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, StripComment(tc.in))
		})
	}
}

// stallingReader returns (0, nil) for the first stalls reads, then serves data.
type stallingReader struct {
	stalls int
	calls  int
	data   io.Reader
}

func (s *stallingReader) Read(p []byte) (int, error) {
	s.calls++
	if s.stalls < 0 || s.calls <= s.stalls {
		return 0, nil
	}

	return s.data.Read(p)
}

func TestReadLineNoProgress(t *testing.T) {
	t.Run("reader that never makes progress", func(t *testing.T) {
		sr := &stallingReader{stalls: -1}

		_, err := NewReader(sr).ReadLine()
		assert.ErrorIs(t, err, io.ErrNoProgress)
		assert.Equal(t, maxEmptyReads, sr.calls)
	})

	t.Run("occasional empty reads are tolerated", func(t *testing.T) {
		sr := &stallingReader{stalls: maxEmptyReads - 1, data: strings.NewReader("ok\n")}

		line, err := NewReader(sr).ReadLine()
		require.NoError(t, err)
		assert.Equal(t, "ok", line)
	})
}
