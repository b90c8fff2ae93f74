// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goa reads experimentally supported Gene Ontology annotations
// and the auxiliary map from GO database accessions to UniProt accessions.
package goa

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
)

// DefaultEvidence is the set of experimental GO evidence codes.
var DefaultEvidence = []string{"EXP", "IDA", "IPI", "IMP", "IGI", "IEP"}

const annotationColumns = 5

var flybase = regexp.MustCompile(`^FB:[A-Za-z]*(\d+)`)

// Normalize returns the form of a GO database accession used as the key
// of the GO to UniProt map. FlyBase accessions are rewritten as FBGN
// followed by their digits and other prefixed accessions lose their
// database prefix.
//
//	FB:FBgn0000008  -> FBGN0000008
//	SGD:S000000911  -> S000000911
//	UniProtKB:P12345 -> P12345
func Normalize(acc string) string {
	if strings.HasPrefix(acc, "FB:") {
		if m := flybase.FindStringSubmatch(acc); m != nil {
			return "FBGN" + m[1]
		}
	}
	if i := strings.Index(acc, ":"); i >= 0 {
		return acc[i+1:]
	}
	return acc
}

// Annotation is a single evidence-bearing GO annotation.
type Annotation struct {
	// Accession is the GO database accession as it appears in
	// the annotation table.
	Accession    string
	EvidenceCode string

	// Reference is the two reference sub-fields joined by a
	// colon, for example "PMID:21315072".
	Reference string
	GOTerm    string

	// Line is the input line the annotation was read from.
	Line int
}

// Key returns the normalized accession of a.
func (a Annotation) Key() string { return Normalize(a.Accession) }

// Reader reads annotations from a GO evidence table.
type Reader struct {
	lines *flatfile.Lines
	codes map[string]bool
}

// NewReader returns a Reader that reads annotations from r, retaining
// only those with one of the given evidence codes. If codes is nil,
// DefaultEvidence is used.
func NewReader(r io.Reader, codes []string) *Reader {
	if codes == nil {
		codes = DefaultEvidence
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return &Reader{lines: flatfile.NewLines(r), codes: set}
}

// Read returns the next retained annotation. Rows without a GO database
// accession are skipped. At the end of the input Read returns io.EOF.
func (r *Reader) Read() (Annotation, error) {
	for r.lines.Next() {
		line := r.lines.Text()
		if line == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < annotationColumns {
			return Annotation{}, fmt.Errorf("goa: line %d: too few columns: got %d need %d", r.lines.Line(), len(f), annotationColumns)
		}
		acc := strings.TrimSpace(f[1])
		if acc == "" || !r.codes[f[0]] {
			continue
		}
		return Annotation{
			Accession:    acc,
			EvidenceCode: f[0],
			Reference:    f[2] + ":" + f[3],
			GOTerm:       strings.TrimSpace(f[4]),
			Line:         r.lines.Line(),
		}, nil
	}
	if err := r.lines.Err(); err != nil {
		return Annotation{}, err
	}
	return Annotation{}, io.EOF
}
