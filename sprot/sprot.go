// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sprot scans UniProt SwissProt/TrEMBL flat-file records for
// manually curated experimental evidence.
//
// A record is a run of two-letter tagged lines ending with a "//" footer.
// The scanner requires the accession line to come before any evidence and
// the footer to come after it, so evidence can never be attributed to the
// accessions of a neighbouring record.
package sprot

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
)

// DefaultReference is the ECO code for manually asserted experimental
// evidence. Its PubMed citations make up the evidence sets.
const DefaultReference = "ECO:0000269"

// DefaultEvidence is the set of ECO codes that mark a record as carrying
// some level of experimental support.
var DefaultEvidence = []string{
	"ECO:0000269", "ECO:0000006", "ECO:0000179",
	"ECO:0000360", "ECO:0005606", "ECO:0000325",
	"ECO:0000180", "ECO:0005604", "ECO:0000002",
	"ECO:0005605", "ECO:0000073", "ECO:0000059",
	"ECO:0000008", "ECO:0001094", "ECO:0005516",
	"ECO:0000021", "ECO:0000340", "ECO:0000220",
	"ECO:0005504", "ECO:0005031",
}

const (
	accessionTag = "AC   "
	footerLine   = "//"
)

// Options control which evidence a Scanner collects.
type Options struct {
	// Reference is the evidence code whose PubMed citations are
	// collected. DefaultReference is used if empty.
	Reference string

	// Evidence is the set of codes that mark a record as
	// Evidenced. DefaultEvidence is used if nil.
	Evidence []string
}

// Evidence is a set of PubMed identifiers in order of first appearance.
type Evidence []string

// String returns the identifiers joined with "|".
func (e Evidence) String() string { return strings.Join(e, "|") }

// Record is the evidence gathered from one flat-file record.
type Record struct {
	// Accessions holds the record's accessions, primary first.
	Accessions []string

	// References holds the PubMed identifiers cited with the
	// reference evidence code.
	References Evidence

	// Evidenced is true if any line after the accession line
	// carries one of the configured evidence codes.
	Evidenced bool

	// Line is the line number of the record footer.
	Line int
}

// OrderError reports a record whose lines are out of the accession,
// evidence, footer order.
type OrderError struct {
	Line   int
	Text   string
	Reason string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("sprot: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

type state int

const (
	seeking      state = iota // before a record's accession line
	accumulating              // collecting evidence up to the footer
	footer                    // a record has just been emitted
)

// Scanner reads records from a flat file.
type Scanner struct {
	lines *flatfile.Lines

	marker string
	refs   *regexp.Regexp
	codes  []string

	state       state
	inAccession bool
	seen        map[string]bool
	rec         Record

	err error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, opts Options) *Scanner {
	ref := opts.Reference
	if ref == "" {
		ref = DefaultReference
	}
	codes := opts.Evidence
	if codes == nil {
		codes = DefaultEvidence
	}
	return &Scanner{
		lines:  flatfile.NewLines(r),
		marker: ref + "|PubMed:",
		refs:   regexp.MustCompile(regexp.QuoteMeta(ref) + `\|PubMed:(\d+)`),
		codes:  codes,
	}
}

// Next advances the Scanner to the next complete record, which is then
// available through Record. It returns false when the input is
// exhausted or an error occurs.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	for s.lines.Next() {
		line := s.lines.Text()
		if s.state == footer {
			s.state = seeking
		}
		switch s.state {
		case seeking:
			if line == footerLine {
				return s.fail(line, "record terminator without accession line")
			}
			if acc, ok := accessions(line); ok {
				s.begin(acc)
				continue
			}
			if strings.Contains(line, s.marker) {
				return s.fail(line, "evidence before accession line")
			}
		case accumulating:
			if line == footerLine {
				s.rec.Line = s.lines.Line()
				s.state = footer
				return true
			}
			if acc, ok := accessions(line); ok {
				if !s.inAccession {
					return s.fail(line, "accession line before record terminator")
				}
				s.rec.Accessions = append(s.rec.Accessions, acc...)
				continue
			}
			s.inAccession = false
			s.collect(line)
		}
	}
	s.err = s.lines.Err()
	if s.err == nil && s.state == accumulating {
		s.err = &OrderError{Line: s.lines.Line(), Reason: "unterminated record at end of input"}
	}
	return false
}

func (s *Scanner) begin(acc []string) {
	s.rec = Record{Accessions: acc, References: Evidence{}}
	s.seen = make(map[string]bool)
	s.inAccession = true
	s.state = accumulating
}

func (s *Scanner) collect(line string) {
	if strings.Contains(line, s.marker) {
		for _, m := range s.refs.FindAllStringSubmatch(line, -1) {
			if !s.seen[m[1]] {
				s.seen[m[1]] = true
				s.rec.References = append(s.rec.References, m[1])
			}
		}
	}
	if s.rec.Evidenced {
		return
	}
	for _, code := range s.codes {
		if strings.Contains(line, code) {
			s.rec.Evidenced = true
			return
		}
	}
}

func (s *Scanner) fail(line, reason string) bool {
	s.err = &OrderError{Line: s.lines.Line(), Text: line, Reason: reason}
	return false
}

// Record returns the most recently scanned record.
func (s *Scanner) Record() Record { return s.rec }

// Error returns the first error encountered by the Scanner.
func (s *Scanner) Error() error { return s.err }

// accessions returns the accessions declared by an AC line.
func accessions(line string) ([]string, bool) {
	if !strings.HasPrefix(line, accessionTag) {
		return nil, false
	}
	var acc []string
	for _, f := range strings.Split(line[len(accessionTag):], ";") {
		f = strings.TrimSpace(f)
		if f != "" {
			acc = append(acc, f)
		}
	}
	return acc, len(acc) != 0
}
