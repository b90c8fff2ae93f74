// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestLines(c *check.C) {
	l := NewLines(strings.NewReader("AC   P12345;\r\nCC   text\n\n//"))
	var (
		got   []string
		lines []int
	)
	for l.Next() {
		got = append(got, l.Text())
		lines = append(lines, l.Line())
	}
	c.Check(l.Err(), check.IsNil)
	c.Check(got, check.DeepEquals, []string{"AC   P12345;", "CC   text", "", "//"})
	c.Check(lines, check.DeepEquals, []int{1, 2, 3, 4})
}

func (s *S) TestRoundTrip(c *check.C) {
	const data = "P12345\tUniRef100_P12345\nP99999\t\n"
	dir := c.MkDir()
	for _, name := range []string{"plain.tsv", "packed.tsv.gz"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		c.Assert(err, check.IsNil)
		_, err = io.WriteString(w, data)
		c.Assert(err, check.IsNil)
		c.Assert(w.Close(), check.IsNil)

		raw, err := os.ReadFile(path)
		c.Assert(err, check.IsNil)
		if IsGzip(path) {
			c.Check(string(raw), check.Not(check.Equals), data, check.Commentf("%s not compressed", name))
		} else {
			c.Check(string(raw), check.Equals, data)
		}

		r, err := Open(path)
		c.Assert(err, check.IsNil)
		b, err := io.ReadAll(r)
		c.Check(err, check.IsNil)
		c.Check(r.Close(), check.IsNil)
		c.Check(string(b), check.Equals, data, check.Commentf("%s", name))
	}
}

func (s *S) TestOpenMissing(c *check.C) {
	_, err := Open(filepath.Join(c.MkDir(), "absent.dat.gz"))
	c.Check(os.IsNotExist(err), check.Equals, true)
}
