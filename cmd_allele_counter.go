// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"

	"github.com/sirupsen/logrus"
)

// alleleCounterCmd composes C, B, G, W, but skips the parallel driver:
// the VCAC header's variant_count field requires a final patch that is
// simplest to do with one sequential pass. Output is the compact VCAC
// binary format, built
// in memory so the variant_count field can be seeked back to once the
// total is known before copying to stdout.
type alleleCounterCmd struct{}

func (c *alleleCounterCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx allele-counter", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("allele-counter: %s", err)
		return 1
	}
	defer in.Close()

	_, samples, _, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("allele-counter: %s", err)
		return 1
	}

	var mem memSeeker
	vw, err := NewAlleleCounterWriter(&mem, samples.Len())
	if err != nil {
		logrus.Errorf("allele-counter: %s", err)
		return 1
	}

	warn := warnFunc(&common)
	for {
		line, ok, lerr := in.Lines().Next()
		if lerr != nil {
			logrus.Errorf("allele-counter: %s", lerr)
			return 1
		}
		if !ok {
			break
		}
		if len(line) == 0 {
			continue
		}
		rec, perr := ParseVariantLine(line)
		if perr != nil {
			warn(perr.Error())
			continue
		}
		gtIdx := FormatIndex(rec.FormatKeys, "GT")
		counts := make([][2]int8, samples.Len())
		for si := range counts {
			if gtIdx < 0 || si >= len(rec.Samples) {
				counts[si] = AlleleCounts(0, 0, true)
				continue
			}
			values := SplitSubfields(rec.Samples[si], ':')
			gt := PadSampleValue(values, gtIdx)
			a1, a2, _, missing := CodeAnyDiploid(gt)
			counts[si] = AlleleCounts(a1, a2, missing)
		}
		if err := vw.WriteVariant(string(rec.Chrom), string(rec.Pos), string(rec.ID), string(rec.Ref), string(rec.Alt), counts); err != nil {
			logrus.Errorf("allele-counter: %s", err)
			return 1
		}
	}
	if err := vw.Close(); err != nil {
		logrus.Errorf("allele-counter: %s", err)
		return 1
	}
	if _, err := stdout.Write(mem.buf); err != nil {
		logrus.Errorf("allele-counter: %s", err)
		return 1
	}
	return 0
}
