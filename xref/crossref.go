// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xref

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
	"github.com/biogo/xrefmap/sprot"
)

const (
	pubMedLabel  = "PMID:"
	uniProtLabel = "UniProtKB:"
)

// Evidence is the SwissProt evidence attributed to one element of a
// multi-valued accession field.
type Evidence struct {
	PubMed sprot.Evidence

	// None is true at the position of an accession that has
	// no UniRef100 representative.
	None bool
}

// CrossRef is a row of the final cross-reference table. The UniProt,
// UniRef, UniProtGO and evidence fields are positionally aligned: the
// i-th element of each refers to the i-th UniProt accession.
type CrossRef struct {
	// Backfilled is true for rows of accessions that carry SwissProt
	// evidence but no GO annotation. Such rows have no GO fields and
	// their DB:ACC column is the labelled UniProt accession.
	Backfilled bool

	DBAccession  string
	EvidenceCode string
	Reference    string
	GOTerm       string

	UniProt   []string
	UniRef    []string
	UniProtGO []string

	UniProtEvidence []Evidence
	UniRefEvidence  []Evidence
}

// check returns an error if the multi-valued fields of x are not aligned.
func (x *CrossRef) check(stage string, line int) error {
	n := len(x.UniProt)
	if n == 0 {
		return &AlignmentError{Stage: stage, Line: line, Field: "uniprot", Want: 1, Got: 0}
	}
	for _, f := range []struct {
		name string
		len  int
	}{
		{"uniref", len(x.UniRef)},
		{"uniprot go terms", len(x.UniProtGO)},
		{"uniprot evidence", len(x.UniProtEvidence)},
		{"uniref evidence", len(x.UniRefEvidence)},
	} {
		if f.len != n {
			return &AlignmentError{Stage: stage, Line: line, Field: f.name, Want: n, Got: f.len}
		}
	}
	return nil
}

// Writer writes the final cross-reference table.
type Writer struct {
	w io.Writer
	n int
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write writes x as a single tab-delimited line. Write returns an
// AlignmentError without writing if the fields of x are not aligned.
func (w *Writer) Write(x CrossRef) error {
	if err := x.check(StageWrite, w.n+1); err != nil {
		return err
	}
	dbAcc := x.DBAccession
	if x.Backfilled {
		dbAcc = uniProtLabel + x.UniProt[0]
	}
	f := [NumColumns]string{
		DBAccession:     dbAcc,
		EvidenceCode:    x.EvidenceCode,
		Reference:       x.Reference,
		GOTerm:          x.GOTerm,
		UniProt:         strings.Join(x.UniProt, ","),
		UniRef:          strings.Join(x.UniRef, ","),
		UniProtGO:       strings.Join(x.UniProtGO, ","),
		UniProtEvidence: formatEvidence(x.UniProtEvidence),
		UniRefEvidence:  formatEvidence(x.UniRefEvidence),
	}
	_, err := io.WriteString(w.w, strings.Join(f[:], "\t")+"\n")
	if err == nil {
		w.n++
	}
	return err
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int { return w.n }

func formatEvidence(ev []Evidence) string {
	elems := make([]string, len(ev))
	for i, e := range ev {
		if e.None {
			elems[i] = None
			continue
		}
		ids := make([]string, len(e.PubMed))
		for j, id := range e.PubMed {
			ids[j] = pubMedLabel + id
		}
		elems[i] = strings.Join(ids, "|")
	}
	return strings.Join(elems, ";")
}

func parseEvidence(field string) []Evidence {
	elems := strings.Split(field, ";")
	ev := make([]Evidence, len(elems))
	for i, e := range elems {
		if e == None {
			ev[i] = Evidence{None: true}
			continue
		}
		ev[i].PubMed = sprot.Evidence{}
		if e == "" {
			continue
		}
		for _, id := range strings.Split(e, "|") {
			ev[i].PubMed = append(ev[i].PubMed, strings.TrimPrefix(id, pubMedLabel))
		}
	}
	return ev
}

// Reader reads a final cross-reference table.
type Reader struct {
	lines *flatfile.Lines
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader { return &Reader{lines: flatfile.NewLines(r)} }

// Read returns the next row of the table. At the end of the input Read
// returns io.EOF.
func (r *Reader) Read() (CrossRef, error) {
	for r.lines.Next() {
		if r.lines.Text() == "" {
			continue
		}
		f := strings.Split(r.lines.Text(), "\t")
		if len(f) != NumColumns {
			return CrossRef{}, fmt.Errorf("xref: line %d: got %d columns want %d", r.lines.Line(), len(f), NumColumns)
		}
		x := CrossRef{
			DBAccession:     f[DBAccession],
			EvidenceCode:    f[EvidenceCode],
			Reference:       f[Reference],
			GOTerm:          f[GOTerm],
			UniProt:         split(f[UniProt]),
			UniRef:          split(f[UniRef]),
			UniProtGO:       strings.Split(f[UniProtGO], ","),
			UniProtEvidence: parseEvidence(f[UniProtEvidence]),
			UniRefEvidence:  parseEvidence(f[UniRefEvidence]),
		}
		if x.EvidenceCode == "" && strings.HasPrefix(x.DBAccession, uniProtLabel) {
			x.Backfilled = true
			x.DBAccession = ""
		}
		if err := x.check(StageRead, r.lines.Line()); err != nil {
			return CrossRef{}, err
		}
		return x, nil
	}
	if err := r.lines.Err(); err != nil {
		return CrossRef{}, err
	}
	return CrossRef{}, io.EOF
}
