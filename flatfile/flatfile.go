// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flatfile provides access to the large tab-delimited and
// line-tagged release files read and written by xrefmap. Paths ending
// in ".gz" are transparently decompressed or compressed, and the path
// "-" refers to standard input or output.
package flatfile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Stdio is the path that refers to standard input or standard output.
const Stdio = "-"

// maxLine is the longest line accepted by Lines. SwissProt sequence
// blocks and idmapping rows with many cross references are long.
const maxLine = 16 << 20

// IsGzip returns whether path names a gzip compressed file.
func IsGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens the named file for reading. If the path ends in ".gz" the
// returned reader decompresses the file contents.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsGzip(path) {
		return f, nil
	}
	z, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: z, closers: []io.Closer{z, f}}, nil
}

type writeCloser struct {
	*bufio.Writer
	z *pgzip.Writer
	f io.Closer
}

func (w *writeCloser) Close() error {
	err := w.Writer.Flush()
	if w.z != nil {
		if zerr := w.z.Close(); err == nil {
			err = zerr
		}
	}
	if w.f != nil {
		if ferr := w.f.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

// Create creates the named file for buffered writing. If the path ends
// in ".gz" the written data is gzip compressed. The returned writer must
// be closed to flush buffered data.
func Create(path string) (io.WriteCloser, error) {
	if path == Stdio {
		return &writeCloser{Writer: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !IsGzip(path) {
		return &writeCloser{Writer: bufio.NewWriter(f), f: f}, nil
	}
	z := pgzip.NewWriter(f)
	return &writeCloser{Writer: bufio.NewWriter(z), z: z, f: f}, nil
}

// ErrLineTooLong is returned by Lines when an input line exceeds the
// maximum supported length.
var ErrLineTooLong = errors.New("flatfile: line too long")

// Lines reads newline-delimited text, tracking the 1-based number of
// the current line for diagnostics.
type Lines struct {
	sc   *bufio.Scanner
	text string
	line int
	err  error
}

// NewLines returns a Lines reading from r.
func NewLines(r io.Reader) *Lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	return &Lines{sc: sc}
}

// Next advances to the next line, returning false at the end of input
// or on error.
func (l *Lines) Next() bool {
	if l.err != nil {
		return false
	}
	if !l.sc.Scan() {
		l.err = l.sc.Err()
		if errors.Is(l.err, bufio.ErrTooLong) {
			l.err = ErrLineTooLong
		}
		l.text = ""
		return false
	}
	l.line++
	l.text = strings.TrimSuffix(l.sc.Text(), "\r")
	return true
}

// Text returns the current line without its line terminator.
func (l *Lines) Text() string { return l.text }

// Line returns the 1-based number of the current line.
func (l *Lines) Line() int { return l.line }

// Err returns the first non-EOF error encountered by Next.
func (l *Lines) Err() error { return l.err }
