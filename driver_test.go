// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"sync/atomic"

	"gopkg.in/check.v1"
)

type driverSuite struct{}

var _ = check.Suite(&driverSuite{})

func (s *driverSuite) TestChooseKSmallData(c *check.C) {
	c.Check(chooseK(0, 8, 1*mb), check.Equals, 1)
	c.Check(chooseK(0, 8, 5*mb), check.Equals, 1)
}

func (s *driverSuite) TestChooseKMediumDataCapsAtFour(c *check.C) {
	c.Check(chooseK(0, 8, 50*mb), check.Equals, 4)
}

func (s *driverSuite) TestChooseKRespectsUserK(c *check.C) {
	c.Check(chooseK(2, 8, 500*mb), check.Equals, 2)
}

func (s *driverSuite) TestChooseKNeverExceedsHardwareConcurrency(c *check.C) {
	c.Check(chooseK(64, 4, 200*mb), check.Equals, 4)
}

func (s *driverSuite) TestChunkBoundariesAreLineAligned(c *check.C) {
	data := []byte("aaa\nbbb\nccc\nddd\n")
	bounds := chunkBoundaries(data, 0, 4)
	c.Assert(bounds, check.HasLen, 5)
	c.Check(bounds[0], check.Equals, 0)
	c.Check(bounds[len(bounds)-1], check.Equals, len(data))
	for i := 1; i < len(bounds); i++ {
		c.Check(bounds[i] >= bounds[i-1], check.Equals, true)
		if bounds[i] < len(data) {
			c.Check(data[bounds[i]-1], check.Equals, byte('\n'))
		}
	}
}

func (s *driverSuite) TestRunPreservesLineOrder(c *check.C) {
	var lines [][]byte
	for i := 0; i < 200; i++ {
		lines = append(lines, []byte("line"))
	}
	data := bytes.Join(lines, []byte("\n"))
	data = append(data, '\n')

	var out bytes.Buffer
	w := NewBufWriter(&out, nil)
	driver := NewParallelDriver(data, 0, 4, w)
	err := driver.Run(func(chunkIndex int, data []byte, begin, end int, cw *BufWriter, abort *int32) error {
		it := NewMmapLineIterator(data, begin, end)
		for {
			if atomic.LoadInt32(abort) != 0 {
				return nil
			}
			line, ok, _ := it.Next()
			if !ok {
				return nil
			}
			cw.Write(line)
			cw.WriteByte('\n')
		}
	})
	c.Assert(err, check.IsNil)
	c.Check(out.String(), check.Equals, string(data))
}

func (s *driverSuite) TestRunAbortsOnFirstError(c *check.C) {
	data := []byte("a\nb\nc\nd\n")
	var out bytes.Buffer
	w := NewBufWriter(&out, nil)
	driver := NewParallelDriver(data, 0, 4, w)
	boom := errFixture("boom")
	err := driver.Run(func(chunkIndex int, data []byte, begin, end int, cw *BufWriter, abort *int32) error {
		if chunkIndex == 0 {
			return boom
		}
		return nil
	})
	c.Check(err, check.Equals, error(boom))
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
