// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goa

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/xrefmap/flatfile"
)

// Index maps normalized GO database accessions to UniProt accessions.
// Duplicated mappings are retained in the order they were read.
type Index map[string][]string

// Lookup returns the UniProt accessions mapped from acc.
func (x Index) Lookup(acc string) ([]string, bool) {
	u, ok := x[acc]
	return u, ok
}

// ReadIndex reads a two column GO accession to UniProt accession map.
func ReadIndex(r io.Reader) (Index, error) {
	x := make(Index)
	l := flatfile.NewLines(r)
	for l.Next() {
		if l.Text() == "" {
			continue
		}
		f := strings.Split(l.Text(), "\t")
		if len(f) < 2 {
			return nil, fmt.Errorf("goa: line %d: too few columns in index: got %d need 2", l.Line(), len(f))
		}
		acc := strings.TrimSpace(f[0])
		x[acc] = append(x[acc], strings.TrimSpace(f[1]))
	}
	return x, l.Err()
}
