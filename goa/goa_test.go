// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goa

import (
	"io"
	"strings"
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestNormalize(c *check.C) {
	for _, t := range []struct{ in, want string }{
		{in: "FB:FBgn0001", want: "FBGN0001"},
		{in: "FB:FBgn0000008", want: "FBGN0000008"},
		{in: "SGD:S000000911", want: "S000000911"},
		{in: "UniProtKB:P12345", want: "P12345"},
		{in: "MGI:MGI:1918911", want: "MGI:1918911"},
		{in: "P12345", want: "P12345"},
	} {
		c.Check(Normalize(t.in), check.Equals, t.want, check.Commentf("%q", t.in))
	}
}

const annotations = "IDA\tSGD:S000000911\tPMID\t21315072\tGO:0005634 \n" +
	"IEA\tSGD:S000000912\tGO_REF\t0000002\tGO:0005737\n" +
	"IMP\t\tPMID\t1\tGO:0000001\n" +
	"\n" +
	"IGI\tFB:FBgn0001\t\t\tGO:0007155\n"

func (s *S) TestReader(c *check.C) {
	r := NewReader(strings.NewReader(annotations), nil)
	var got []Annotation
	for {
		a, err := r.Read()
		if err == io.EOF {
			break
		}
		c.Assert(err, check.IsNil)
		got = append(got, a)
	}
	c.Check(got, check.DeepEquals, []Annotation{
		{Accession: "SGD:S000000911", EvidenceCode: "IDA", Reference: "PMID:21315072", GOTerm: "GO:0005634", Line: 1},
		{Accession: "FB:FBgn0001", EvidenceCode: "IGI", Reference: ":", GOTerm: "GO:0007155", Line: 5},
	})
	c.Check(got[1].Key(), check.Equals, "FBGN0001")
}

func (s *S) TestReaderCodes(c *check.C) {
	r := NewReader(strings.NewReader(annotations), []string{"IEA"})
	a, err := r.Read()
	c.Assert(err, check.IsNil)
	c.Check(a.Accession, check.Equals, "SGD:S000000912")
	_, err = r.Read()
	c.Check(err, check.Equals, io.EOF)
}

func (s *S) TestReaderShortRow(c *check.C) {
	r := NewReader(strings.NewReader("IDA\tSGD:S1\tPMID\n"), nil)
	_, err := r.Read()
	c.Check(err, check.ErrorMatches, `goa: line 1: too few columns: got 3 need 5`)
}

func (s *S) TestIndex(c *check.C) {
	x, err := ReadIndex(strings.NewReader("S000000911\tP12345\nFBGN0001\tQ1\nS000000911\tP99999\nS000000911\tP12345\n\n"))
	c.Assert(err, check.IsNil)
	u, ok := x.Lookup("S000000911")
	c.Check(ok, check.Equals, true)
	c.Check(u, check.DeepEquals, []string{"P12345", "P99999", "P12345"})
	_, ok = x.Lookup("absent")
	c.Check(ok, check.Equals, false)
	c.Check(x, check.HasLen, 2)

	_, err = ReadIndex(strings.NewReader("S1\n"))
	c.Check(err, check.ErrorMatches, `goa: line 1: .*`)
}
