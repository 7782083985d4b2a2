// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ldCmd composes C, B, G, W, P: pairwise r² linkage disequilibrium,
// either as a streaming sliding-window report or a full region matrix.
// Variant accumulation is inherently sequential (the streaming deque
// and the matrix's input list both depend on file order), so ldCmd
// reads with the input's plain line iterator rather than
// ParallelDriver; LDMatrix still parallelizes its O(V²) row
// computation with the throttle pool.
type ldCmd struct{}

func (c *ldCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	var mode, region string
	var window, maxDistance int
	var threshold float64
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	fs.StringVar(&mode, "mode", "stream", "stream or matrix")
	fs.IntVar(&window, "window", 1000, "streaming deque size")
	fs.Float64Var(&threshold, "threshold", 0.0, "minimum r² to emit")
	fs.IntVar(&maxDistance, "max-distance", 0, "maximum bp distance between pairs (0 = unlimited)")
	fs.StringVar(&region, "region", "", "restrict matrix mode to chrom:start-end")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx ld", Version)
		return 0
	}
	configureLogging(&common)

	var rg *ldRegion
	if region != "" {
		parsed, err := parseLDRegion(region)
		if err != nil {
			logrus.Errorf("ld: %s", err)
			return 1
		}
		rg = &parsed
	}

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("ld: %s", err)
		return 1
	}
	defer in.Close()

	_, samples, _, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("ld: %s", err)
		return 1
	}

	out := NewBufWriter(stdout, nil)
	switch mode {
	case "matrix":
		err = runLDMatrix(in, samples, common.ResolveThreads(), rg, out)
	default:
		err = runLDStream(in, samples, window, threshold, maxDistance, out)
	}
	if err != nil {
		logrus.Errorf("ld: %s", err)
		return 1
	}
	return 0
}

func nextLDVariant(in *Input, nSamples int) (LDVariant, bool, error) {
	for {
		line, ok, err := in.Lines().Next()
		if err != nil {
			return LDVariant{}, false, err
		}
		if !ok {
			return LDVariant{}, false, nil
		}
		if len(line) == 0 {
			continue
		}
		rec, perr := ParseVariantLine(line)
		if perr != nil {
			continue
		}
		gtIdx := FormatIndex(rec.FormatKeys, "GT")
		if gtIdx < 0 {
			continue
		}
		sums := make([]int32, nSamples)
		oks := make([]bool, nSamples)
		for si, sample := range rec.Samples {
			values := SplitSubfields(sample, ':')
			gt := PadSampleValue(values, gtIdx)
			s, sok := AlleleSum(gt)
			sums[si], oks[si] = s, sok
		}
		pos, _ := strconv.Atoi(string(rec.Pos))
		return LDVariant{
			Chrom: string(rec.Chrom),
			Pos:   pos,
			ID:    string(rec.ID),
			Codes: CodesToLD(sums, oks),
		}, true, nil
	}
}

func runLDStream(in *Input, samples *SampleIndex, window int, threshold float64, maxDistance int, out *BufWriter) error {
	out.WriteString("VAR1_CHROM\tVAR1_POS\tVAR1_ID\tVAR2_CHROM\tVAR2_POS\tVAR2_ID\tR2\n")
	streamer := NewLDStreamer(window, threshold, maxDistance)
	for {
		v, ok, err := nextLDVariant(in, samples.Len())
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		for _, pair := range streamer.Push(v) {
			out.WriteString(pair.V1.Chrom)
			out.WriteByte('\t')
			out.WriteString(strconv.Itoa(pair.V1.Pos))
			out.WriteByte('\t')
			out.WriteString(pair.V1.ID)
			out.WriteByte('\t')
			out.WriteString(pair.V2.Chrom)
			out.WriteByte('\t')
			out.WriteString(strconv.Itoa(pair.V2.Pos))
			out.WriteByte('\t')
			out.WriteString(pair.V2.ID)
			out.WriteByte('\t')
			out.WriteDouble(pair.R2)
			out.WriteByte('\n')
		}
		if err := out.MaybeFlush(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// ldRegion is a parsed "chrom:start-end" region string, 1-based
// inclusive, matching samtools-style region syntax.
type ldRegion struct {
	Chrom      string
	Start, End int
}

func (r ldRegion) contains(v LDVariant) bool {
	return v.Chrom == r.Chrom && v.Pos >= r.Start && v.Pos <= r.End
}

// parseLDRegion parses a samtools-style "chrom:start-end" region
// filter for matrix mode. A malformed region is reported to the
// caller as an error so RunCommand can exit 1.
func parseLDRegion(s string) (ldRegion, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return ldRegion{}, fmt.Errorf("invalid region syntax: %q", s)
	}
	chrom := s[:colon]
	rest := s[colon+1:]
	dash := strings.IndexByte(rest, '-')
	if chrom == "" || dash < 0 {
		return ldRegion{}, fmt.Errorf("invalid region syntax: %q", s)
	}
	start, err1 := strconv.Atoi(rest[:dash])
	end, err2 := strconv.Atoi(rest[dash+1:])
	if err1 != nil || err2 != nil || start > end {
		return ldRegion{}, fmt.Errorf("invalid region syntax: %q", s)
	}
	return ldRegion{Chrom: chrom, Start: start, End: end}, nil
}

func runLDMatrix(in *Input, samples *SampleIndex, workers int, region *ldRegion, out *BufWriter) error {
	var variants []LDVariant
	for {
		v, ok, err := nextLDVariant(in, samples.Len())
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if region != nil && !region.contains(v) {
			continue
		}
		variants = append(variants, v)
	}
	sym := LDMatrix(variants, workers)
	out.WriteString("#LD_MATRIX_START\n")
	n := len(variants)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j > 0 {
				out.WriteByte('\t')
			}
			if i == j {
				out.WriteString("1.0000")
			} else {
				out.WriteString(strconv.FormatFloat(sym.At(i, j), 'f', 4, 64))
			}
		}
		out.WriteByte('\n')
	}
	out.WriteString("#LD_MATRIX_END\n")
	return out.Flush()
}
