// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"

	"github.com/sirupsen/logrus"
)

// normalizeCmd composes C, B, W, P: reference-free indel trimming,
// one output line per ALT allele.
type normalizeCmd struct{}

func (c *normalizeCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx normalize", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("normalize: %s", err)
		return 1
	}
	defer in.Close()

	_, _, dataStart, headerLines, err := ScanHeaderKeepText(in)
	if err != nil {
		logrus.Errorf("normalize: %s", err)
		return 1
	}

	out := NewBufWriter(stdout, nil)
	for _, hl := range headerLines {
		out.Write(hl)
		out.WriteByte('\n')
	}
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		for _, alt := range AltAlleles(rec.Alt) {
			n := NormalizeIndel(rec.Pos, rec.Ref, alt)
			w.Write(rec.Chrom)
			w.WriteByte('\t')
			w.Write(n.Pos)
			w.WriteByte('\t')
			w.Write(rec.ID)
			w.WriteByte('\t')
			w.Write(n.Ref)
			w.WriteByte('\t')
			w.Write(n.Alt)
			w.WriteByte('\t')
			w.Write(rec.Qual)
			w.WriteByte('\t')
			w.Write(rec.Filter)
			w.WriteByte('\t')
			w.Write(rec.Info)
			if rec.FormatKeys != nil {
				w.WriteByte('\t')
				w.Write(JoinSubfields(rec.FormatKeys))
				for _, s := range rec.Samples {
					w.WriteByte('\t')
					w.Write(s)
				}
			}
			w.WriteByte('\n')
		}
		return w.MaybeFlush()
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("normalize: %s", err)
		return 1
	}
	return 0
}
