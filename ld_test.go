// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"math"

	"gopkg.in/check.v1"
)

type ldSuite struct{}

var _ = check.Suite(&ldSuite{})

func (s *ldSuite) TestPairwiseR2SelfIsOne(c *check.C) {
	a := []int32{0, 1, 2, 1, 0, 2}
	r2 := PairwiseR2(a, a)
	c.Check(math.Abs(r2-1.0) < 1e-9, check.Equals, true, check.Commentf("r2=%v", r2))
}

func (s *ldSuite) TestPairwiseR2Symmetric(c *check.C) {
	a := []int32{0, 1, 2, 1, 0, 2}
	b := []int32{2, 1, 0, 1, 2, 0}
	c.Check(PairwiseR2(a, b), check.Equals, PairwiseR2(b, a))
}

func (s *ldSuite) TestPairwiseR2SkipsMissingSamples(c *check.C) {
	a := []int32{0, 1, 2, ldMissing}
	b := []int32{0, 1, 2, 1}
	r2 := PairwiseR2(a, b)
	c.Check(math.Abs(r2-1.0) < 1e-9, check.Equals, true)
}

func (s *ldSuite) TestPairwiseR2ConstantVectorIsZero(c *check.C) {
	a := []int32{1, 1, 1, 1}
	b := []int32{0, 1, 2, 1}
	c.Check(PairwiseR2(a, b), check.Equals, 0.0)
}

func (s *ldSuite) TestCodesToLDMapsMissing(c *check.C) {
	sums := []int32{0, 3, 2}
	ok := []bool{true, false, true}
	out := CodesToLD(sums, ok)
	c.Check(out, check.DeepEquals, []int32{0, ldMissing, 2})
}

func (s *ldSuite) TestLDStreamerEmitsPairsAboveThreshold(c *check.C) {
	streamer := NewLDStreamer(10, 0.5, 0)
	v1 := LDVariant{Chrom: "1", Pos: 100, ID: "rs1", Codes: []int32{0, 1, 2, 1, 0, 2}}
	v2 := LDVariant{Chrom: "1", Pos: 200, ID: "rs2", Codes: []int32{0, 1, 2, 1, 0, 2}}
	v3 := LDVariant{Chrom: "1", Pos: 300, ID: "rs3", Codes: []int32{2, 1, 0, 1, 2, 0}}

	out1 := streamer.Push(v1)
	c.Check(out1, check.HasLen, 0)

	out2 := streamer.Push(v2)
	c.Assert(out2, check.HasLen, 1)
	c.Check(out2[0].V1.ID, check.Equals, "rs1")
	c.Check(out2[0].V2.ID, check.Equals, "rs2")
	c.Check(math.Abs(out2[0].R2-1.0) < 1e-9, check.Equals, true)

	out3 := streamer.Push(v3)
	c.Assert(out3, check.HasLen, 2)
}

func (s *ldSuite) TestLDStreamerRespectsMaxDistance(c *check.C) {
	streamer := NewLDStreamer(10, 0.0, 50)
	v1 := LDVariant{Chrom: "1", Pos: 100, Codes: []int32{0, 1, 2, 1}}
	v2 := LDVariant{Chrom: "1", Pos: 500, Codes: []int32{0, 1, 2, 1}}
	streamer.Push(v1)
	out := streamer.Push(v2)
	c.Check(out, check.HasLen, 0)
}

func (s *ldSuite) TestLDStreamerEvictsOldestBeyondWindow(c *check.C) {
	streamer := NewLDStreamer(1, 0.0, 0)
	v1 := LDVariant{Chrom: "1", Pos: 100, Codes: []int32{0, 1, 2}}
	v2 := LDVariant{Chrom: "1", Pos: 200, Codes: []int32{0, 1, 2}}
	v3 := LDVariant{Chrom: "1", Pos: 300, Codes: []int32{0, 1, 2}}
	streamer.Push(v1)
	streamer.Push(v2)
	out := streamer.Push(v3)
	c.Assert(out, check.HasLen, 1)
	c.Check(out[0].V1.Pos, check.Equals, 200)
}

func (s *ldSuite) TestLDMatrixDiagonalIsOneAndSymmetric(c *check.C) {
	variants := []LDVariant{
		{Chrom: "1", Pos: 100, Codes: []int32{0, 1, 2, 1, 0, 2}},
		{Chrom: "1", Pos: 200, Codes: []int32{0, 1, 2, 1, 0, 2}},
		{Chrom: "1", Pos: 300, Codes: []int32{2, 1, 0, 1, 2, 0}},
	}
	sym := LDMatrix(variants, 2)
	n, _ := sym.Dims()
	c.Assert(n, check.Equals, 3)
	for i := 0; i < n; i++ {
		c.Check(sym.At(i, i), check.Equals, 1.0)
		for j := 0; j < n; j++ {
			c.Check(sym.At(i, j), check.Equals, sym.At(j, i))
		}
	}
}

func (s *ldSuite) TestLDMatrixEmpty(c *check.C) {
	sym := LDMatrix(nil, 1)
	n, _ := sym.Dims()
	c.Check(n, check.Equals, 0)
}

func (s *ldSuite) TestParseLDRegionValid(c *check.C) {
	r, err := parseLDRegion("chr1:100-200")
	c.Assert(err, check.IsNil)
	c.Check(r.Chrom, check.Equals, "chr1")
	c.Check(r.Start, check.Equals, 100)
	c.Check(r.End, check.Equals, 200)
	c.Check(r.contains(LDVariant{Chrom: "chr1", Pos: 150}), check.Equals, true)
	c.Check(r.contains(LDVariant{Chrom: "chr1", Pos: 250}), check.Equals, false)
	c.Check(r.contains(LDVariant{Chrom: "chr2", Pos: 150}), check.Equals, false)
}

func (s *ldSuite) TestParseLDRegionRejectsMalformed(c *check.C) {
	for _, bad := range []string{"chr1", "chr1:100", "chr1:200-100", ":100-200", "chr1:abc-200"} {
		_, err := parseLDRegion(bad)
		c.Check(err, check.NotNil, check.Commentf("input=%q", bad))
	}
}
