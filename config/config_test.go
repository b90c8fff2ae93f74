// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/check.v1"

	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestDefault(c *check.C) {
	cfg := Default()
	c.Check(cfg.Validate(), check.IsNil)
	c.Check(cfg.Columns(), check.Equals, idmap.DefaultColumns)
	c.Check(cfg.SwissProtOptions().Reference, check.Equals, sprot.DefaultReference)
	c.Check(cfg.SwissProtOptions().Evidence, check.DeepEquals, sprot.DefaultEvidence)
	c.Check(cfg.Phase1(), check.Equals, Phase1Name)
	c.Check(cfg.Output, check.Equals, "map_file.tsv")

	cfg.GOA.Evidence[0] = "IEA"
	c.Check(Default().GOA.Evidence[0], check.Equals, "EXP")
}

func (s *S) TestDecode(c *check.C) {
	const doc = `
idmap:
  go: 5
goa:
  evidence: [IDA]
work-dir: /tmp/xref
`
	cfg, err := Decode(strings.NewReader(doc))
	c.Assert(err, check.IsNil)
	c.Check(cfg.Columns(), check.Equals, idmap.Columns{Accession: 0, GOTerms: 5, UniRef: 7})
	c.Check(cfg.GOA.Evidence, check.DeepEquals, []string{"IDA"})
	c.Check(cfg.SwissProt.Reference, check.Equals, sprot.DefaultReference)
	c.Check(cfg.Phase2(), check.Equals, "/tmp/xref/phase_2.tsv")
}

func (s *S) TestDecodeEmpty(c *check.C) {
	cfg, err := Decode(strings.NewReader(""))
	c.Assert(err, check.IsNil)
	c.Check(cfg, check.DeepEquals, Default())
}

func (s *S) TestDecodeUnknownKey(c *check.C) {
	_, err := Decode(strings.NewReader("idmap:\n  representative: 3\n"))
	c.Check(err, check.ErrorMatches, `(?s).*field representative not found.*`)
}

func (s *S) TestValidate(c *check.C) {
	for _, t := range []struct {
		doc  string
		want string
	}{
		{"idmap:\n  uniref: 6\n", `idmap: columns must be distinct: .*`},
		{"idmap:\n  accession: -1\n", `idmap.accession: negative column -1`},
		{"goa:\n  evidence: []\n", `goa.evidence: no evidence codes`},
		{"sprot:\n  reference: \"\"\n", `sprot.reference: empty evidence code`},
		{"output: \"\"\n", `output: empty path`},
	} {
		_, err := Decode(strings.NewReader(t.doc))
		c.Check(err, check.ErrorMatches, t.want, check.Commentf("%q", t.doc))
	}
}

func (s *S) TestLoad(c *check.C) {
	path := filepath.Join(c.MkDir(), "xrefmap.yaml")
	c.Assert(os.WriteFile(path, []byte("output: xref.tsv.gz\n"), 0o644), check.IsNil)
	cfg, err := Load(path)
	c.Assert(err, check.IsNil)
	c.Check(cfg.Output, check.Equals, "xref.tsv.gz")

	_, err = Load(filepath.Join(c.MkDir(), "missing.yaml"))
	c.Check(err, check.ErrorMatches, `read config .*missing.yaml: .*`)
}
