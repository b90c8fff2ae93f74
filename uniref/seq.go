// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uniref provides a linear sequence type that parses UniRef100
// FASTA header data into the sequence annotation, and subsetting of
// UniRef100 FASTA files by cluster.
package uniref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

const idPrefix = "UniRef100_"

// ParseID returns the representative accession of a UniRef100 cluster
// identifier and whether id is one.
func ParseID(id string) (string, bool) {
	if !strings.HasPrefix(id, idPrefix) || len(id) == len(idPrefix) {
		return "", false
	}
	return id[len(idPrefix):], true
}

// Header is the cluster data held in a UniRef100 FASTA description.
type Header struct {
	Name    string // common protein name of the cluster
	Members int    // n=
	Taxon   string // Tax=, the common taxon of the members
	TaxID   int    // TaxID=
	RepID   string // RepID=, the UniProt entry name of the representative
}

// ParseDescription parses a UniRef100 FASTA description of the form
//
//	Name n=Members Tax=Taxon TaxID=TaxID RepID=RepID
//
// Fields that are absent are left zero. Field values may contain spaces.
func ParseDescription(d string) (Header, error) {
	const (
		membersField = "n"
		taxonField   = "Tax"
		taxIDField   = "TaxID"
		repIDField   = "RepID"
	)

	var (
		h    Header
		name []string
		key  string
		val  []string
		err  error
	)
	set := func() {
		v := strings.Join(val, " ")
		switch key {
		case membersField:
			h.Members, err = atoi(key, v, err)
		case taxonField:
			h.Taxon = v
		case taxIDField:
			h.TaxID, err = atoi(key, v, err)
		case repIDField:
			h.RepID = v
		}
	}
	for _, f := range strings.Fields(d) {
		k, v, ok := strings.Cut(f, "=")
		if ok {
			switch k {
			case membersField, taxonField, taxIDField, repIDField:
				set()
				key, val = k, []string{v}
				continue
			}
		}
		if key == "" {
			name = append(name, f)
		} else {
			val = append(val, f)
		}
	}
	set()
	h.Name = strings.Join(name, " ")
	return h, err
}

func atoi(key, val string, err error) (int, error) {
	n, perr := strconv.Atoi(val)
	if perr != nil && err == nil {
		err = fmt.Errorf("uniref: invalid %s field %q", key, val)
	}
	return n, err
}

// Seq modifies the behaviour of linear.Seq so that the description is
// parsed according to the UniRef100 format.
type Seq struct {
	*linear.Seq
	Header *Header
}

// NewSeq returns a new Seq.
func NewSeq(id string, b []alphabet.Letter, alpha alphabet.Alphabet) Seq {
	return Seq{Seq: linear.NewSeq(id, b, alpha), Header: &Header{}}
}

// Clone returns a copy of the Seq.
func (s Seq) Clone() seq.Sequence {
	h := *s.Header
	return Seq{Seq: s.Seq.Clone().(*linear.Seq), Header: &h}
}

// SetDescription sets the Desc of the embedded linear.Seq and parses
// the cluster fields of the description into the Header.
func (s Seq) SetDescription(d string) error {
	h, err := ParseDescription(d)
	*s.Header = h
	s.Desc = d
	return err
}
