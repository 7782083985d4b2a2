// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"gopkg.in/check.v1"
)

type tokenizerSuite struct{}

var _ = check.Suite(&tokenizerSuite{})

func (s *tokenizerSuite) TestParseVariantLineFullRecord(c *check.C) {
	line := []byte("chr1\t100\trs1\tA\tG\t50\tPASS\tDP=10\tGT:AD\t0/1:5,5\t1/1:0,9")
	rec, err := ParseVariantLine(line)
	c.Assert(err, check.IsNil)
	c.Check(string(rec.Chrom), check.Equals, "chr1")
	c.Check(string(rec.Pos), check.Equals, "100")
	c.Check(string(rec.ID), check.Equals, "rs1")
	c.Check(string(rec.Ref), check.Equals, "A")
	c.Check(string(rec.Alt), check.Equals, "G")
	c.Check(string(rec.Qual), check.Equals, "50")
	c.Check(string(rec.Filter), check.Equals, "PASS")
	c.Check(string(rec.Info), check.Equals, "DP=10")
	c.Assert(rec.FormatKeys, check.HasLen, 2)
	c.Check(string(rec.FormatKeys[0]), check.Equals, "GT")
	c.Check(string(rec.FormatKeys[1]), check.Equals, "AD")
	c.Assert(rec.Samples, check.HasLen, 2)
	c.Check(string(rec.Samples[0]), check.Equals, "0/1:5,5")
	c.Check(string(rec.Samples[1]), check.Equals, "1/1:0,9")
}

func (s *tokenizerSuite) TestParseVariantLineNoFormat(c *check.C) {
	line := []byte("chr1\t100\trs1\tA\tG\t50\tPASS\tDP=10")
	rec, err := ParseVariantLine(line)
	c.Assert(err, check.IsNil)
	c.Check(rec.FormatKeys, check.IsNil)
	c.Check(rec.Samples, check.IsNil)
}

func (s *tokenizerSuite) TestParseVariantLineTooFewFields(c *check.C) {
	_, err := ParseVariantLine([]byte("chr1\t100\trs1"))
	c.Assert(err, check.NotNil)
	c.Check(err, check.FitsTypeOf, ErrTooFewFields{})
}

func (s *tokenizerSuite) TestSplitSubfields(c *check.C) {
	parts := SplitSubfields([]byte("a:b:c"), ':')
	c.Assert(parts, check.HasLen, 3)
	c.Check(string(parts[0]), check.Equals, "a")
	c.Check(string(parts[2]), check.Equals, "c")
}

func (s *tokenizerSuite) TestPadSampleValue(c *check.C) {
	values := [][]byte{[]byte("0/1")}
	c.Check(string(PadSampleValue(values, 0)), check.Equals, "0/1")
	c.Check(string(PadSampleValue(values, 1)), check.Equals, ".")
}

func (s *tokenizerSuite) TestAltAlleles(c *check.C) {
	alts := AltAlleles([]byte("C,T,G"))
	c.Assert(alts, check.HasLen, 3)
	c.Check(string(alts[1]), check.Equals, "T")
}

func (s *tokenizerSuite) TestSampleStarts(c *check.C) {
	starts := SampleStarts([]byte("0/1:5,5\t1/1:0,9\t./."), 3)
	c.Assert(starts, check.HasLen, 4)
	c.Check(starts[0], check.Equals, 0)
}
