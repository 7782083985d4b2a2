// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// inbreedingCmd composes C, B, G, A.2, W: it folds every biallelic
// site's genotype codes into a shared InbreedingAccumulator, then
// emits one row per sample once the whole file has been consumed.
type inbreedingCmd struct{}

func (c *inbreedingCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	var global, collapseHomAltMulti bool
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	fs.BoolVar(&global, "global-freq", false, "use global allele frequency instead of leave-one-out")
	fs.BoolVar(&collapseHomAltMulti, "collapse-hom-alt-multi", false, "treat any equal nonzero allele pair as homAlt")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx inbreeding", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("inbreeding: %s", err)
		return 1
	}
	defer in.Close()

	_, samples, dataStart, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("inbreeding: %s", err)
		return 1
	}

	mode := InbreedingLeaveOneOut
	if global {
		mode = InbreedingGlobal
	}
	acc := NewInbreedingAccumulator(samples.Len(), mode)
	var mu sync.Mutex

	sink := newMemBufWriter()
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), sink, func(rec Record, w *BufWriter) error {
		if len(AltAlleles(rec.Alt)) != 1 {
			return nil
		}
		gtIdx := FormatIndex(rec.FormatKeys, "GT")
		if gtIdx < 0 {
			return nil
		}
		codes := make([]int8, len(rec.Samples))
		for si, sample := range rec.Samples {
			values := SplitSubfields(sample, ':')
			gt := PadSampleValue(values, gtIdx)
			codes[si] = codeDiploidBiallelicInbreeding(gt, collapseHomAltMulti)
		}
		mu.Lock()
		acc.AddSite(codes)
		mu.Unlock()
		return nil
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("inbreeding: %s", err)
		return 1
	}

	out := NewBufWriter(stdout, nil)
	out.WriteString("SAMPLE\tF\n")
	fs_ := acc.F()
	for i, f := range fs_ {
		out.WriteString(samples.Names[i])
		out.WriteByte('\t')
		if f != f { // NaN
			out.WriteString("NA")
		} else {
			out.WriteDouble(f)
		}
		out.WriteByte('\n')
	}
	if err := out.Flush(); err != nil {
		logrus.Errorf("inbreeding: %s", err)
		return 1
	}
	return 0
}
