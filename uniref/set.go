// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniref

import (
	"strings"

	"github.com/biogo/store/llrb"
)

type key string

func (k key) Compare(c llrb.Comparable) int { return strings.Compare(string(k), string(c.(key))) }

// Set is an ordered set of accessions. The zero value is an empty set.
type Set struct {
	t llrb.Tree
}

// Insert adds acc to the set.
func (s *Set) Insert(acc string) { s.t.Insert(key(acc)) }

// Has returns whether acc is in the set.
func (s *Set) Has(acc string) bool { return s.t.Get(key(acc)) != nil }

// Len returns the number of accessions in the set.
func (s *Set) Len() int { return s.t.Len() }

// Do calls fn for each accession in the set in lexical order.
func (s *Set) Do(fn func(acc string)) {
	s.t.Do(func(c llrb.Comparable) (done bool) {
		fn(string(c.(key)))
		return false
	})
}
