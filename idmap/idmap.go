// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idmap reads the UniProt idmapping table that relates UniProt
// accessions to their current UniRef100 cluster representative and to
// the GO terms assigned by UniProt.
package idmap

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
)

var uniref100 = regexp.MustCompile(`UniRef100_(\w+)`)

// Columns holds the 0-based columns of the idmapping fields.
type Columns struct {
	Accession int
	GOTerms   int
	UniRef    int
}

// DefaultColumns are the columns of the idmapping_selected.tab release file.
var DefaultColumns = Columns{Accession: 0, GOTerms: 6, UniRef: 7}

func (c Columns) width() int {
	w := c.Accession
	if c.GOTerms > w {
		w = c.GOTerms
	}
	if c.UniRef > w {
		w = c.UniRef
	}
	return w + 1
}

// Entry is the mapping for one UniProt accession.
type Entry struct {
	Accession string

	// Representative is the accession of the UniRef100 cluster
	// representative, empty if the accession is not assigned to a
	// current cluster.
	Representative string

	// GOTerms is the unparsed GO term field.
	GOTerms string
}

// HasRepresentative returns whether e has a UniRef100 representative.
func (e Entry) HasRepresentative() bool { return e.Representative != "" }

// Self returns whether e is the representative of its own cluster.
func (e Entry) Self() bool { return e.Representative != "" && e.Representative == e.Accession }

// Representative returns the cluster representative named by a UniRef100
// token in field, and whether one was found.
func Representative(field string) (string, bool) {
	m := uniref100.FindStringSubmatch(field)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Parse parses a single idmapping line.
func Parse(line string, cols Columns) (Entry, error) {
	f := strings.Split(line, "\t")
	if len(f) < cols.width() {
		return Entry{}, fmt.Errorf("idmap: too few columns: got %d need %d", len(f), cols.width())
	}
	e := Entry{
		Accession: strings.TrimSpace(f[cols.Accession]),
		GOTerms:   strings.TrimSpace(f[cols.GOTerms]),
	}
	if e.Accession == "" {
		return Entry{}, fmt.Errorf("idmap: empty accession")
	}
	e.Representative, _ = Representative(f[cols.UniRef])
	return e, nil
}

// Table is an accession-keyed mapping table.
type Table map[string]Entry

// Read reads an idmapping table from r. If keep is not nil, only entries
// for accessions where keep returns true are retained. Duplicated
// accessions take the last entry read.
func Read(r io.Reader, cols Columns, keep func(acc string) bool) (Table, error) {
	t := make(Table)
	l := flatfile.NewLines(r)
	for l.Next() {
		if l.Text() == "" {
			continue
		}
		e, err := Parse(l.Text(), cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.Line(), err)
		}
		if keep != nil && !keep(e.Accession) {
			continue
		}
		t[e.Accession] = e
	}
	return t, l.Err()
}
