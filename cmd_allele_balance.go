// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"

	"github.com/sirupsen/logrus"
)

// alleleBalanceCmd composes C, B, G, W: it reports a per-sample
// heterozygosity indicator derived purely from the genotype code (no
// AD subfield is consulted). Heterozygous calls report 1.000000,
// homozygous calls (ref or alt) report 0.000000, and missing calls
// report NA.
type alleleBalanceCmd struct{}

func (c *alleleBalanceCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	var sampleName string
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	fs.StringVar(&sampleName, "sample", "", "restrict output to one sample (default: all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx allele-balance", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("allele-balance: %s", err)
		return 1
	}
	defer in.Close()

	_, samples, dataStart, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("allele-balance: %s", err)
		return 1
	}
	wantIdx := -1
	if sampleName != "" {
		idx, ok := samples.IndexOf(sampleName)
		if !ok {
			logrus.Errorf("allele-balance: %s", ErrUnknownSample{Name: sampleName})
			return 1
		}
		wantIdx = idx
	}

	out := NewBufWriter(stdout, nil)
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		gtIdx := FormatIndex(rec.FormatKeys, "GT")
		if gtIdx < 0 {
			return nil
		}
		for si, sample := range rec.Samples {
			if wantIdx >= 0 && si != wantIdx {
				continue
			}
			values := SplitSubfields(sample, ':')
			gt := PadSampleValue(values, gtIdx)
			code := CodeDiploidBiallelic(gt)
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
			w.WriteString(samples.Names[si])
			w.WriteByte('\t')
			switch code {
			case GTMissing:
				w.WriteString("NA")
			case GTHet:
				w.WriteDouble(1.0)
			default:
				w.WriteDouble(0.0)
			}
			w.WriteByte('\n')
			if err := w.MaybeFlush(); err != nil {
				return err
			}
		}
		return nil
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("allele-balance: %s", err)
		return 1
	}
	return 0
}
