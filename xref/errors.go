// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xref

import "fmt"

// Pipeline stages named in diagnostics.
const (
	StageUniProt  = "join-uniprot"
	StageUniRef   = "join-uniref"
	StageEvidence = "join-evidence"
	StageBackfill = "backfill"
	StageWrite    = "write"
	StageRead     = "read"
)

// ConsistencyError reports an accession that must be present in a
// lookup table but is not. It indicates that the input files were taken
// from different releases.
type ConsistencyError struct {
	Stage     string
	Line      int
	Accession string
}

func (e *ConsistencyError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("xref: %s: accession %q missing from evidence map", e.Stage, e.Accession)
	}
	return fmt.Sprintf("xref: %s: line %d: accession %q missing from evidence map", e.Stage, e.Line, e.Accession)
}

// AlignmentError reports a multi-valued field whose element count does
// not match the UniProt accession field it is paired with.
type AlignmentError struct {
	Stage string
	Line  int
	Field string
	Want  int
	Got   int
}

func (e *AlignmentError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("xref: %s: %s has %d elements, want %d", e.Stage, e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("xref: %s: line %d: %s has %d elements, want %d", e.Stage, e.Line, e.Field, e.Got, e.Want)
}

// StageError annotates an error from reading or writing a Builder file
// with the pipeline stage and the path of the file being processed.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("xref: %s: %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
