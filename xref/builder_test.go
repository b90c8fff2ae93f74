// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xref

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/check.v1"

	"github.com/biogo/xrefmap/flatfile"
	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
)

func writeFile(c *check.C, path, content string) {
	w, err := flatfile.Create(path)
	c.Assert(err, check.IsNil)
	_, err = io.WriteString(w, content)
	c.Assert(err, check.IsNil)
	c.Assert(w.Close(), check.IsNil)
}

func readFile(c *check.C, path string) string {
	r, err := flatfile.Open(path)
	c.Assert(err, check.IsNil)
	defer r.Close()
	b, err := io.ReadAll(r)
	c.Assert(err, check.IsNil)
	return string(b)
}

func newBuilder(c *check.C) *Builder {
	dir := c.MkDir()
	b := &Builder{
		Annotations: filepath.Join(dir, "goa.tsv"),
		Index:       filepath.Join(dir, "index.tsv"),
		IDMap:       filepath.Join(dir, "idmapping.tab.gz"),
		FlatFiles:   []string{filepath.Join(dir, "sprot.dat")},

		Phase1Path: filepath.Join(dir, "phase1.tsv"),
		Phase2Path: filepath.Join(dir, "phase2.tsv.gz"),
		Output:     filepath.Join(dir, "xref.tsv"),

		Columns: idmap.DefaultColumns,
	}
	writeFile(c, b.Annotations, annotations)
	writeFile(c, b.Index, index)
	writeFile(c, b.IDMap, mapping)
	writeFile(c, b.FlatFiles[0], flatFile)
	return b
}

func (s *S) TestBuild(c *check.C) {
	b := newBuilder(c)
	c.Assert(b.Build(), check.IsNil)
	c.Check(readFile(c, b.Phase1Path), check.Equals, wantPhase1)
	c.Check(readFile(c, b.Phase2Path), check.Equals, wantPhase2)
	c.Check(readFile(c, b.Output), check.Equals, wantJoined+wantBackfill)
}

func (s *S) TestBuildTrEMBLPrecedence(c *check.C) {
	b := newBuilder(c)
	trembl := filepath.Join(filepath.Dir(b.Output), "trembl.dat.gz")
	writeFile(c, trembl, "AC   R22222;\nCC   {ECO:0000269|PubMed:7} {ECO:0000269|PubMed:8}\n//\n")
	b.FlatFiles = append(b.FlatFiles, trembl)
	c.Assert(b.Build(), check.IsNil)
	c.Check(readFile(c, b.Output), check.Equals, wantJoined+
		"UniProtKB:Q11111\t\t\t\tQ11111\tQ11111\t\tPMID:5\tPMID:5\n"+
		"UniProtKB:R22222\t\t\t\tR22222\tNONE\tGO:1\tPMID:7|PMID:8\tNONE\n")
}

func (s *S) TestBuildOrderError(c *check.C) {
	b := newBuilder(c)
	writeFile(c, b.FlatFiles[0], "AC   P12345;\nCC   {ECO:0000269|PubMed:1}\n")
	c.Assert(b.Phase1(), check.IsNil)
	c.Assert(b.Phase2(), check.IsNil)
	err := b.Phase3()
	c.Assert(err, check.NotNil)
	c.Check(err, check.ErrorMatches, `xref: join-evidence: .*sprot\.dat: sprot: line 2: unterminated record at end of input: ""`)
	var serr *StageError
	c.Assert(errors.As(err, &serr), check.Equals, true, check.Commentf("%v", err))
	c.Check(serr.Stage, check.Equals, StageEvidence)
	c.Check(serr.Path, check.Equals, b.FlatFiles[0])
	checkNoOutput(c, b.Output)
}

// checkNoOutput checks that neither path nor a partially written
// version of it exists.
func checkNoOutput(c *check.C, path string) {
	_, err := os.Stat(path)
	c.Check(os.IsNotExist(err), check.Equals, true, check.Commentf("%s: %v", path, err))
	names, err := os.ReadDir(filepath.Dir(path))
	c.Assert(err, check.IsNil)
	for _, n := range names {
		c.Check(strings.HasPrefix(n.Name(), ".partial-"), check.Equals, false, check.Commentf("%s left behind", n.Name()))
	}
}

func (s *S) TestBuildConsistencyError(c *check.C) {
	b := newBuilder(c)
	writeFile(c, b.FlatFiles[0], "ID   A\nAC   P12345;\nCC   {ECO:0000269|PubMed:1}\n//\n")
	err := b.Build()
	c.Assert(err, check.NotNil)
	var cerr *ConsistencyError
	c.Assert(errors.As(err, &cerr), check.Equals, true, check.Commentf("%v", err))
	c.Check(cerr.Stage, check.Equals, StageEvidence)
	var serr *StageError
	c.Assert(errors.As(err, &serr), check.Equals, true, check.Commentf("%v", err))
	c.Check(serr.Path, check.Equals, b.Phase2Path)

	// Earlier phase outputs are complete and kept.
	c.Check(readFile(c, b.Phase2Path), check.Equals, wantPhase2)
	checkNoOutput(c, b.Output)
}

func (s *S) TestBuildReplaceOutput(c *check.C) {
	b := newBuilder(c)
	writeFile(c, b.Output, "stale\n")
	c.Assert(b.Build(), check.IsNil)
	c.Check(readFile(c, b.Output), check.Equals, wantJoined+wantBackfill)
}

func (s *S) TestBuildStageErrors(c *check.C) {
	for _, t := range []struct {
		name  string
		file  func(*Builder) string
		data  string
		stage string
		want  string
	}{
		{
			name:  "short annotation row",
			file:  func(b *Builder) string { return b.Annotations },
			data:  "IDA\tSGD:S000000911\n",
			stage: StageUniProt,
			want:  `xref: join-uniprot: .*goa\.tsv: goa: line 1: too few columns: got 2 need 5`,
		},
		{
			name:  "short index row",
			file:  func(b *Builder) string { return b.Index },
			data:  "S000000911\n",
			stage: StageUniProt,
			want:  `xref: join-uniprot: .*index\.tsv: .*`,
		},
		{
			name:  "short idmapping row",
			file:  func(b *Builder) string { return b.IDMap },
			data:  "P12345\n",
			stage: StageUniRef,
			want:  `xref: join-uniref: .*idmapping\.tab\.gz: line 1: .*`,
		},
	} {
		b := newBuilder(c)
		writeFile(c, t.file(b), t.data)
		err := b.Build()
		c.Assert(err, check.NotNil, check.Commentf("%s", t.name))
		c.Check(err, check.ErrorMatches, t.want, check.Commentf("%s", t.name))
		var serr *StageError
		c.Assert(errors.As(err, &serr), check.Equals, true, check.Commentf("%s: %v", t.name, err))
		c.Check(serr.Stage, check.Equals, t.stage, check.Commentf("%s", t.name))
		c.Check(serr.Path, check.Equals, t.file(b), check.Commentf("%s", t.name))
		checkNoOutput(c, b.Output)
	}
}

func (s *S) TestBuildMissingInput(c *check.C) {
	b := newBuilder(c)
	c.Assert(os.Remove(b.Index), check.IsNil)
	c.Check(b.Build(), check.NotNil)
	_, err := os.Stat(b.Phase1Path)
	c.Check(os.IsNotExist(err), check.Equals, true)
}

func (s *S) TestBuildOptions(c *check.C) {
	b := newBuilder(c)
	b.SwissProt = sprot.Options{Reference: "ECO:0000250"}
	b.GOEvidence = []string{"IEA"}
	c.Assert(b.Build(), check.IsNil)
	c.Check(readFile(c, b.Phase1Path), check.Equals, "SGD:S000000911\tIEA\tGO_REF:0000002\tGO:0005737\tP12345,P99999,Q77777\n")
}
