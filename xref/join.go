// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xref builds the GO/UniProt/UniRef100 evidence cross-reference
// table.
//
// The table is built by three order-preserving streaming left joins, each
// reading the table written by the previous one and holding only a single
// lookup table in memory:
//
//	join 1: GO database accession -> UniProt accessions
//	join 2: UniProt accessions -> UniRef100 representatives and UniProt GO terms
//	join 3: UniProt and UniRef100 accessions -> SwissProt evidence
//
// A backfill pass then adds rows for SwissProt accessions that were not
// reached through any GO annotation.
package xref

import (
	"io"
	"strings"

	"github.com/biogo/xrefmap/goa"
	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
)

// Stats summarizes a pass over a table.
type Stats struct {
	In      int // rows read
	Out     int // rows written
	Dropped int // rows read but not written
	Misses  int // failed optional lookups
}

// JoinUniProt performs join 1, writing one row to dst for each annotation
// read from src. The UniProt accessions mapped from the annotation's
// normalized accession are appended as a comma-joined field, which is
// empty if the accession is not in idx.
func JoinUniProt(dst *RowWriter, src *goa.Reader, idx goa.Index) (Stats, error) {
	var st Stats
	for {
		a, err := src.Read()
		if err != nil {
			if err == io.EOF {
				return st, nil
			}
			return st, err
		}
		st.In++
		u, ok := idx.Lookup(a.Key())
		if !ok {
			st.Misses++
		}
		err = dst.Write(Row{
			DBAccession:  a.Accession,
			EvidenceCode: a.EvidenceCode,
			Reference:    a.Reference,
			GOTerm:       a.GOTerm,
			UniProt:      strings.Join(u, ","),
		})
		if err != nil {
			return st, err
		}
		st.Out++
	}
}

// resolve returns the UniRef100 representative and GO term field for acc
// and whether acc is in t. Missing values are None.
func resolve(t idmap.Table, acc string) (rep, goTerms string, ok bool) {
	e, ok := t[acc]
	switch {
	case !ok:
		return None, None, false
	case e.Self():
		return e.Accession, e.GOTerms, true
	case e.HasRepresentative():
		return e.Representative, e.GOTerms, true
	default:
		return None, e.GOTerms, true
	}
}

// JoinUniRef performs join 2, reading join 1 rows from src and writing
// rows extended with the UniRef100 representatives and UniProt GO terms
// of each UniProt accession. Rows without UniProt accessions are dropped.
func JoinUniRef(dst *RowWriter, src *RowReader, t idmap.Table) (Stats, error) {
	var st Stats
	for {
		row, err := src.Read()
		if err != nil {
			if err == io.EOF {
				return st, nil
			}
			return st, err
		}
		st.In++
		if row[UniProt] == "" {
			st.Dropped++
			continue
		}
		accs := split(row[UniProt])
		reps := make([]string, len(accs))
		goTerms := make([]string, len(accs))
		for i, acc := range accs {
			var ok bool
			reps[i], goTerms[i], ok = resolve(t, acc)
			if !ok {
				st.Misses++
			}
		}
		out := append(row[:UniProtWidth:UniProtWidth], strings.Join(reps, ","), strings.Join(goTerms, ","))
		if n := len(strings.Split(out[UniProtGO], ",")); n != len(accs) {
			return st, &AlignmentError{Stage: StageUniRef, Line: src.Line(), Field: "uniprot go terms", Want: len(accs), Got: n}
		}
		err = dst.Write(out)
		if err != nil {
			return st, err
		}
		st.Out++
	}
}

// Seen is the set of UniProt accessions written by join 3.
type Seen map[string]bool

// Unseen returns the accessions of ev that are not in s, in the order
// they were added to ev.
func (s Seen) Unseen(ev *sprot.EvidenceMap) []string {
	var acc []string
	ev.Do(func(a string, _ sprot.Evidence) {
		if !s[a] {
			acc = append(acc, a)
		}
	})
	return acc
}

// lookup returns the evidence for each accession in accs. None elements
// are carried through. Every other accession must be present in ev.
func lookup(accs []string, ev *sprot.EvidenceMap, stage string, line int) ([]Evidence, error) {
	out := make([]Evidence, len(accs))
	for i, acc := range accs {
		if acc == None {
			out[i] = Evidence{None: true}
			continue
		}
		refs, ok := ev.Get(acc)
		if !ok {
			return nil, &ConsistencyError{Stage: stage, Line: line, Accession: acc}
		}
		out[i] = Evidence{PubMed: refs}
	}
	return out, nil
}

// attach returns the cross-reference for a join 2 row with the evidence
// for its UniProt and UniRef100 accessions.
func attach(row Row, ev *sprot.EvidenceMap, stage string, line int) (CrossRef, error) {
	x := CrossRef{
		DBAccession:  row[DBAccession],
		EvidenceCode: row[EvidenceCode],
		Reference:    row[Reference],
		GOTerm:       row[GOTerm],
		UniProt:      split(row[UniProt]),
		UniRef:       split(row[UniRef]),
		UniProtGO:    strings.Split(row[UniProtGO], ","),
	}
	n := len(x.UniProt)
	if len(x.UniRef) != n {
		return x, &AlignmentError{Stage: stage, Line: line, Field: "uniref", Want: n, Got: len(x.UniRef)}
	}
	if len(x.UniProtGO) != n {
		return x, &AlignmentError{Stage: stage, Line: line, Field: "uniprot go terms", Want: n, Got: len(x.UniProtGO)}
	}
	var err error
	x.UniProtEvidence, err = lookup(x.UniProt, ev, stage, line)
	if err != nil {
		return x, err
	}
	x.UniRefEvidence, err = lookup(x.UniRef, ev, stage, line)
	return x, err
}

// JoinEvidence performs join 3, reading join 2 rows from src and writing
// each with the SwissProt evidence of its accessions to dst. Every
// UniProt accession written is added to seen.
func JoinEvidence(dst *Writer, src *RowReader, ev *sprot.EvidenceMap, seen Seen) (Stats, error) {
	var st Stats
	for {
		row, err := src.Read()
		if err != nil {
			if err == io.EOF {
				return st, nil
			}
			return st, err
		}
		st.In++
		if row[UniProt] == "" && row[UniRef] == "" {
			st.Dropped++
			continue
		}
		x, err := attach(row, ev, StageEvidence, src.Line())
		if err != nil {
			return st, err
		}
		err = dst.Write(x)
		if err != nil {
			return st, err
		}
		for _, acc := range x.UniProt {
			seen[acc] = true
		}
		st.Out++
	}
}

// Backfill writes a row for each accession of ev that is not in seen,
// in the order the accessions were added to ev. Each row carries the
// accession's own mapping from t, which need only hold the unseen
// accessions, and its own evidence.
func Backfill(dst *Writer, ev *sprot.EvidenceMap, seen Seen, t idmap.Table) (Stats, error) {
	var st Stats
	for _, acc := range seen.Unseen(ev) {
		st.In++
		rep, goTerms, ok := resolve(t, acc)
		if !ok {
			st.Misses++
		}
		x, err := attach(Row{UniProt: acc, UniRef: rep, UniProtGO: goTerms}, ev, StageBackfill, 0)
		if err != nil {
			return st, err
		}
		x.Backfilled = true
		err = dst.Write(x)
		if err != nil {
			return st, err
		}
		st.Out++
	}
	return st, nil
}
