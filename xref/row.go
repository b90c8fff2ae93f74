// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xref

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
)

// None marks a position in a multi-valued field that has no value.
const None = "NONE"

// Columns of the cross-reference table. The intermediate tables hold
// the leading columns filled by the joins run so far.
const (
	DBAccession = iota
	EvidenceCode
	Reference
	GOTerm
	UniProt
	UniRef
	UniProtGO
	UniProtEvidence
	UniRefEvidence

	NumColumns
)

// Widths of the tables produced by join 1 and join 2.
const (
	UniProtWidth = UniProt + 1
	UniRefWidth  = UniProtGO + 1
)

// Row is a single row of an intermediate table.
type Row []string

// RowReader reads tab-delimited rows of a fixed width.
type RowReader struct {
	lines *flatfile.Lines
	width int
}

// NewRowReader returns a RowReader reading rows of the given width from r.
func NewRowReader(r io.Reader, width int) *RowReader {
	return &RowReader{lines: flatfile.NewLines(r), width: width}
}

// Read returns the next row. Blank lines are skipped. At the end of the
// input Read returns io.EOF.
func (r *RowReader) Read() (Row, error) {
	for r.lines.Next() {
		if r.lines.Text() == "" {
			continue
		}
		row := Row(strings.Split(r.lines.Text(), "\t"))
		if len(row) != r.width {
			return nil, fmt.Errorf("xref: line %d: got %d columns want %d", r.lines.Line(), len(row), r.width)
		}
		return row, nil
	}
	if err := r.lines.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Line returns the input line of the most recently read row.
func (r *RowReader) Line() int { return r.lines.Line() }

// RowWriter writes tab-delimited rows.
type RowWriter struct {
	w io.Writer
}

// NewRowWriter returns a RowWriter writing to w.
func NewRowWriter(w io.Writer) *RowWriter { return &RowWriter{w: w} }

// Write writes row as a single line.
func (w *RowWriter) Write(row Row) error {
	_, err := io.WriteString(w.w, strings.Join(row, "\t")+"\n")
	return err
}

// split splits a comma-joined accession list. An empty field has no
// elements.
func split(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ",")
}
