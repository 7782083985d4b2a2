// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"math"

	"gopkg.in/check.v1"
)

type inbreedingSuite struct{}

var _ = check.Suite(&inbreedingSuite{})

func (s *inbreedingSuite) TestAddSiteSkipsSitesWithFewerThanTwoValidGenotypes(c *check.C) {
	acc := NewInbreedingAccumulator(3, InbreedingGlobal)
	acc.AddSite([]int8{GTHomRef, GTMissing, GTMissing})
	f := acc.F()
	for i, v := range f {
		c.Check(math.IsNaN(v), check.Equals, true, check.Commentf("sample %d", i))
	}
}

func (s *inbreedingSuite) TestFReportsNaNForUnusedSample(c *check.C) {
	acc := NewInbreedingAccumulator(3, InbreedingGlobal)
	acc.AddSite([]int8{GTHet, GTHomAlt, GTMissing})
	f := acc.F()
	c.Check(math.IsNaN(f[0]), check.Equals, false)
	c.Check(math.IsNaN(f[1]), check.Equals, false)
	c.Check(math.IsNaN(f[2]), check.Equals, true)
}

func (s *inbreedingSuite) TestFIsOneWhenAllHomozygousButExpectedHetPositive(c *check.C) {
	acc := NewInbreedingAccumulator(4, InbreedingGlobal)
	for i := 0; i < 10; i++ {
		acc.AddSite([]int8{GTHomRef, GTHomRef, GTHomAlt, GTHomAlt})
	}
	f := acc.F()
	for i, v := range f {
		c.Check(v, check.Equals, 1.0, check.Commentf("sample %d: %v", i, v))
	}
}

func (s *inbreedingSuite) TestGlobalVsLeaveOneOutDiffer(c *check.C) {
	accGlobal := NewInbreedingAccumulator(4, InbreedingGlobal)
	accLOO := NewInbreedingAccumulator(4, InbreedingLeaveOneOut)
	sites := [][]int8{
		{GTHomRef, GTHet, GTHomAlt, GTHet},
		{GTHet, GTHomRef, GTHet, GTHomAlt},
		{GTHomAlt, GTHet, GTHomRef, GTHet},
	}
	for _, codes := range sites {
		accGlobal.AddSite(codes)
		accLOO.AddSite(codes)
	}
	fg := accGlobal.F()
	fl := accLOO.F()
	differs := false
	for i := range fg {
		if math.Abs(fg[i]-fl[i]) > 1e-9 {
			differs = true
		}
	}
	c.Check(differs, check.Equals, true)
}
