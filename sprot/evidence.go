// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sprot

import "io"

// EvidenceMap maps accessions to their accumulated evidence, retaining
// the order in which accessions were first seen.
type EvidenceMap struct {
	order []string
	refs  map[string]Evidence
}

// NewEvidenceMap returns an empty EvidenceMap.
func NewEvidenceMap() *EvidenceMap {
	return &EvidenceMap{refs: make(map[string]Evidence)}
}

// Add adds the evidence of r to every accession of the record. Each
// accession receives its own copy of the reference set. A later record
// for an accession replaces the evidence of an earlier one.
func (m *EvidenceMap) Add(r Record) {
	for _, acc := range r.Accessions {
		if _, ok := m.refs[acc]; !ok {
			m.order = append(m.order, acc)
		}
		ev := make(Evidence, len(r.References))
		copy(ev, r.References)
		m.refs[acc] = ev
	}
}

// Get returns the evidence held for acc and whether acc was present.
func (m *EvidenceMap) Get(acc string) (Evidence, bool) {
	ev, ok := m.refs[acc]
	return ev, ok
}

// Len returns the number of accessions in the map.
func (m *EvidenceMap) Len() int { return len(m.order) }

// Do calls fn for each accession in first-seen order.
func (m *EvidenceMap) Do(fn func(acc string, ev Evidence)) {
	for _, acc := range m.order {
		fn(acc, m.refs[acc])
	}
}

// ReadEvidence scans the records in r, adding each to m. It returns the
// number of records read.
func ReadEvidence(m *EvidenceMap, r io.Reader, opts Options) (int, error) {
	var n int
	sc := NewScanner(r, opts)
	for sc.Next() {
		m.Add(sc.Record())
		n++
	}
	return n, sc.Error()
}
