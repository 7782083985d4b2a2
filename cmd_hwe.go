// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"

	"github.com/sirupsen/logrus"
)

// hweCmd composes C, B, G, A.1, W: per biallelic site, tally diploid
// genotype codes across samples and run the exact test.
type hweCmd struct{}

func (c *hweCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx hwe", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("hwe: %s", err)
		return 1
	}
	defer in.Close()

	_, _, dataStart, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("hwe: %s", err)
		return 1
	}

	out := NewBufWriter(stdout, nil)
	out.WriteString("CHROM\tPOS\tID\tREF\tALT\tHWE_PVALUE\n")
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		if len(AltAlleles(rec.Alt)) != 1 {
			return nil // HWE as specified assumes a biallelic site
		}
		gtIdx := FormatIndex(rec.FormatKeys, "GT")
		if gtIdx < 0 {
			return nil
		}
		var homRef, het, homAlt int
		for _, sample := range rec.Samples {
			values := SplitSubfields(sample, ':')
			gt := PadSampleValue(values, gtIdx)
			switch CodeDiploidBiallelic(gt) {
			case GTHomRef:
				homRef++
			case GTHet:
				het++
			case GTHomAlt:
				homAlt++
			}
		}
		p := HWExactTest(homRef, het, homAlt)
		w.Write(rec.Chrom)
		w.WriteByte('\t')
		w.Write(rec.Pos)
		w.WriteByte('\t')
		w.Write(rec.ID)
		w.WriteByte('\t')
		w.Write(rec.Ref)
		w.WriteByte('\t')
		w.Write(rec.Alt)
		w.WriteByte('\t')
		w.WriteDouble(p)
		w.WriteByte('\n')
		return w.MaybeFlush()
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("hwe: %s", err)
		return 1
	}
	return 0
}
