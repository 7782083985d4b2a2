// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"fmt"
)

// Record is a transient, zero-copy view of one VCF data line's fixed
// columns plus its FORMAT keys and sample columns. Every []byte field
// borrows from the line slice it was parsed from;
// it is only valid as long as that slice's backing array (the mmap
// region, or the current gzip line buffer) is live.
type Record struct {
	Chrom, Pos, ID, Ref, Alt, Qual, Filter, Info []byte
	FormatKeys                                   [][]byte // nil if the line has no FORMAT column
	Samples                                      [][]byte // per-sample ':'-delimited column, unsplit
}

// ErrTooFewFields is returned by ParseVariantLine when a line has
// fewer than the 8 mandatory fixed columns.
type ErrTooFewFields struct {
	Got int
}

func (e ErrTooFewFields) Error() string {
	return fmt.Sprintf("too few fields: got %d, need at least 8", e.Got)
}

// ParseVariantLine splits line on '\t' into the fixed VCF columns plus
// any FORMAT and sample columns. A line with exactly 8 fields has no
// FORMAT and no samples; 9 fields means FORMAT with zero samples.
// Fewer than 8 fields is an error.
func ParseVariantLine(line []byte) (Record, error) {
	var rec Record
	fields := make([][]byte, 0, 10)
	start := 0
	for start <= len(line) {
		end := findTab(line, start, len(line))
		fields = append(fields, line[start:end])
		if end >= len(line) {
			break
		}
		start = end + 1
	}
	if len(fields) < 8 {
		return Record{}, ErrTooFewFields{Got: len(fields)}
	}
	rec.Chrom = fields[0]
	rec.Pos = fields[1]
	rec.ID = fields[2]
	rec.Ref = fields[3]
	rec.Alt = fields[4]
	rec.Qual = fields[5]
	rec.Filter = fields[6]
	rec.Info = fields[7]
	if len(fields) >= 9 {
		rec.FormatKeys = SplitSubfields(fields[8], ':')
	}
	if len(fields) > 9 {
		rec.Samples = fields[9:]
	}
	return rec, nil
}

// SampleStarts returns numSamples+1 offsets into sampleRegion: the
// start of each sample column plus an end sentinel. It performs
// numSamples-1 tab scans, O(L) in the region's length.
func SampleStarts(sampleRegion []byte, numSamples int) []int {
	starts := make([]int, numSamples+1)
	pos := 0
	for i := 0; i < numSamples; i++ {
		starts[i] = pos
		if i == numSamples-1 {
			break
		}
		tab := findTab(sampleRegion, pos, len(sampleRegion))
		pos = tab + 1
	}
	starts[numSamples] = len(sampleRegion)
	return starts
}

// SplitSubfields splits field on sep without allocating a new backing
// array; each returned slice borrows from field. Used to dissect
// FORMAT and sample columns.
func SplitSubfields(field []byte, sep byte) [][]byte {
	if len(field) == 0 {
		return [][]byte{field}
	}
	parts := make([][]byte, 0, 4)
	start := 0
	for i := 0; i <= len(field); i++ {
		if i == len(field) || field[i] == sep {
			parts = append(parts, field[start:i])
			start = i + 1
		}
	}
	return parts
}

// PadSampleValue returns the sample's value at the given FORMAT index,
// padding with "." when the sample's ':'-delimited vector is shorter
// than the declared FORMAT key list.
func PadSampleValue(sampleValues [][]byte, idx int) []byte {
	if idx < len(sampleValues) {
		return sampleValues[idx]
	}
	return []byte{'.'}
}

// AltAlleles splits a Record's Alt column on ',' into its individual
// alternate alleles.
func AltAlleles(alt []byte) [][]byte {
	return bytes.Split(alt, []byte{','})
}
