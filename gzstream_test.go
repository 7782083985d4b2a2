// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"compress/gzip"

	"gopkg.in/check.v1"
)

type gzStreamSuite struct{}

var _ = check.Suite(&gzStreamSuite{})

func gzipBytes(c *check.C, lines ...string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, l := range lines {
		_, err := zw.Write([]byte(l + "\n"))
		c.Assert(err, check.IsNil)
	}
	c.Assert(zw.Close(), check.IsNil)
	return buf.Bytes()
}

func (s *gzStreamSuite) TestIsGzipMagic(c *check.C) {
	c.Check(IsGzipMagic([]byte{0x1f, 0x8b, 0x08}), check.Equals, true)
	c.Check(IsGzipMagic([]byte{0x1f}), check.Equals, false)
	c.Check(IsGzipMagic([]byte("##fileformat")), check.Equals, false)
}

func (s *gzStreamSuite) TestGzipLineReaderYieldsLines(c *check.C) {
	data := gzipBytes(c, "##fileformat=VCFv4.2", "#CHROM\tPOS", "1\t100")
	r, err := NewGzipLineReader(bytes.NewReader(data))
	c.Assert(err, check.IsNil)
	defer r.Close()

	var got []string
	for {
		line, ok, err := r.Next()
		c.Assert(err, check.IsNil)
		if !ok {
			break
		}
		got = append(got, string(line))
	}
	c.Check(got, check.DeepEquals, []string{"##fileformat=VCFv4.2", "#CHROM\tPOS", "1\t100"})
}

func (s *gzStreamSuite) TestGzipLineReaderHandlesEmptyStream(c *check.C) {
	data := gzipBytes(c)
	r, err := NewGzipLineReader(bytes.NewReader(data))
	c.Assert(err, check.IsNil)
	defer r.Close()
	_, ok, err := r.Next()
	c.Assert(err, check.IsNil)
	c.Check(ok, check.Equals, false)
}

func (s *gzStreamSuite) TestNewGzipLineReaderRejectsNonGzipInput(c *check.C) {
	_, err := NewGzipLineReader(bytes.NewReader([]byte("not gzip")))
	c.Check(err, check.NotNil)
}
