// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"

	"github.com/sirupsen/logrus"
)

// splitCmd composes C, B, S, G, A.4, W, P: the header is reproduced
// verbatim, and every multi-allelic data line becomes one line per
// ALT allele.
type splitCmd struct{}

func (c *splitCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx split", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("split: %s", err)
		return 1
	}
	defer in.Close()

	headers, _, dataStart, headerLines, err := ScanHeaderKeepText(in)
	if err != nil {
		logrus.Errorf("split: %s", err)
		return 1
	}

	out := NewBufWriter(stdout, nil)
	for _, hl := range headerLines {
		out.Write(hl)
		out.WriteByte('\n')
	}
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		for _, sr := range SplitMultiallelic(rec, headers) {
			w.Write(sr.Chrom)
			w.WriteByte('\t')
			w.Write(sr.Pos)
			w.WriteByte('\t')
			w.Write(sr.ID)
			w.WriteByte('\t')
			w.Write(sr.Ref)
			w.WriteByte('\t')
			w.Write(sr.Alt)
			w.WriteByte('\t')
			w.Write(sr.Qual)
			w.WriteByte('\t')
			w.Write(sr.Filter)
			w.WriteByte('\t')
			w.Write(sr.Info)
			if sr.FormatStr != nil {
				w.WriteByte('\t')
				w.Write(sr.FormatStr)
				for _, s := range sr.Samples {
					w.WriteByte('\t')
					w.Write(s)
				}
			}
			w.WriteByte('\n')
		}
		return w.MaybeFlush()
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("split: %s", err)
		return 1
	}
	return 0
}
