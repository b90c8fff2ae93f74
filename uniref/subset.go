// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniref

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
)

// Cluster describes a UniRef100 cluster written by Subset.
type Cluster struct {
	Representative string
	Length         int
	Header
}

// Subset writes the sequences read from the UniRef100 FASTA stream r
// whose representative accession is in keep to w, calling fn, if not
// nil, for each one. It returns the number of sequences written.
func Subset(w io.Writer, r io.Reader, keep *Set, fn func(Cluster)) (int, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, NewSeq("", nil, alphabet.Protein)))
	fw := fasta.NewWriter(w, 60)
	var n int
	for sc.Next() {
		s := sc.Seq().(Seq)
		acc, ok := ParseID(s.Name())
		if !ok || !keep.Has(acc) {
			continue
		}
		_, err := fw.Write(s)
		if err != nil {
			return n, fmt.Errorf("uniref: failed to write sequence %q: %w", s.Name(), err)
		}
		n++
		if fn != nil {
			fn(Cluster{Representative: acc, Length: s.Len(), Header: *s.Header})
		}
	}
	return n, sc.Error()
}
