// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"io"

	"gopkg.in/check.v1"
)

type binaryFormatSuite struct{}

var _ = check.Suite(&binaryFormatSuite{})

func (s *binaryFormatSuite) TestAlleleCounterRoundTrip(c *check.C) {
	mem := &memSeeker{}
	vw, err := NewAlleleCounterWriter(mem, 2)
	c.Assert(err, check.IsNil)

	c.Assert(vw.WriteVariant("1", "100", "rs1", "A", "T", [][2]int8{{2, 0}, {1, 1}}), check.IsNil)
	c.Assert(vw.WriteVariant("1", "200", "rs2", "A", "T", [][2]int8{{0, 2}, {-1, -1}}), check.IsNil)
	c.Assert(vw.Close(), check.IsNil)

	vr, err := NewAlleleCounterReader(bytes.NewReader(mem.buf))
	c.Assert(err, check.IsNil)
	c.Check(vr.Header.Version, check.Equals, vcacVersion)
	c.Check(vr.Header.SampleCount, check.Equals, uint32(2))
	c.Check(vr.Header.VariantCount, check.Equals, uint64(2))

	v1, err := vr.Next()
	c.Assert(err, check.IsNil)
	c.Check(v1.Chrom, check.Equals, "1")
	c.Check(v1.Pos, check.Equals, "100")
	c.Check(v1.ID, check.Equals, "rs1")
	c.Check(v1.Counts, check.DeepEquals, [][2]int8{{2, 0}, {1, 1}})

	v2, err := vr.Next()
	c.Assert(err, check.IsNil)
	c.Check(v2.Counts, check.DeepEquals, [][2]int8{{0, 2}, {-1, -1}})

	_, err = vr.Next()
	c.Check(err, check.Equals, io.EOF)
}

func (s *binaryFormatSuite) TestAlleleCounterWriterRejectsSampleCountMismatch(c *check.C) {
	mem := &memSeeker{}
	vw, err := NewAlleleCounterWriter(mem, 2)
	c.Assert(err, check.IsNil)
	err = vw.WriteVariant("1", "100", "rs1", "A", "T", [][2]int8{{1, 1}})
	c.Check(err, check.NotNil)
}

func (s *binaryFormatSuite) TestNewAlleleCounterReaderRejectsBadMagic(c *check.C) {
	_, err := NewAlleleCounterReader(bytes.NewReader(bytes.Repeat([]byte{0}, 16)))
	c.Check(err, check.NotNil)
}

func (s *binaryFormatSuite) TestAlleleCounts(c *check.C) {
	c.Check(AlleleCounts(0, 0, false), check.Equals, [2]int8{2, 0})
	c.Check(AlleleCounts(0, 1, false), check.Equals, [2]int8{1, 1})
	c.Check(AlleleCounts(1, 1, false), check.Equals, [2]int8{0, 2})
	c.Check(AlleleCounts(0, 0, true), check.Equals, [2]int8{-1, -1})
}

func (s *binaryFormatSuite) TestMemSeekerSeekAndOverwrite(c *check.C) {
	m := &memSeeker{}
	m.Write([]byte("abcdef"))
	n, err := m.Seek(2, io.SeekStart)
	c.Assert(err, check.IsNil)
	c.Check(n, check.Equals, int64(2))
	m.Write([]byte("XY"))
	c.Check(string(m.buf), check.Equals, "abXYef")

	_, err = m.Seek(-100, io.SeekStart)
	c.Check(err, check.NotNil)
}
