// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"os"
	"path/filepath"

	"gopkg.in/check.v1"
)

type mmapFileSuite struct{}

var _ = check.Suite(&mmapFileSuite{})

func (s *mmapFileSuite) TestOpenMappedReadsContent(c *check.C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "sample.vcf")
	want := "##fileformat=VCFv4.2\n#CHROM\tPOS\n1\t100\n"
	c.Assert(os.WriteFile(path, []byte(want), 0o644), check.IsNil)

	mf, err := OpenMapped(path)
	c.Assert(err, check.IsNil)
	defer mf.Close()
	c.Check(string(mf.Data), check.Equals, want)
	c.Check(mf.Size(), check.Equals, int64(len(want)))
}

func (s *mmapFileSuite) TestOpenMappedEmptyFile(c *check.C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "empty.vcf")
	c.Assert(os.WriteFile(path, nil, 0o644), check.IsNil)

	mf, err := OpenMapped(path)
	c.Assert(err, check.IsNil)
	defer mf.Close()
	c.Check(mf.Data, check.IsNil)
	c.Check(mf.Size(), check.Equals, int64(0))
}

func (s *mmapFileSuite) TestOpenMappedMissingFile(c *check.C) {
	_, err := OpenMapped(filepath.Join(c.MkDir(), "nope.vcf"))
	c.Check(err, check.NotNil)
}
