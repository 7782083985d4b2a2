// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// vcacMagic is the four-byte tag at the start of a VCAC file.
var vcacMagic = [4]byte{'V', 'C', 'A', 'C'}

const vcacVersion uint32 = 1

// AlleleCounterWriter emits the compact binary allele-counter format: a fixed
// header followed by one record per variant. variant_count in the
// header is a placeholder written up front and patched in Close,
// since the caller streams variants without knowing the final count
// ahead of time; this is why the writer needs a seekable destination.
type AlleleCounterWriter struct {
	w            io.WriteSeeker
	sampleCount  uint32
	variantCount uint64
}

// NewAlleleCounterWriter writes the VCAC header (with variant_count = 0) and
// returns a writer ready for WriteVariant calls.
func NewAlleleCounterWriter(w io.WriteSeeker, sampleCount int) (*AlleleCounterWriter, error) {
	vw := &AlleleCounterWriter{w: w, sampleCount: uint32(sampleCount)}
	if err := vw.writeHeader(); err != nil {
		return nil, err
	}
	return vw, nil
}

func (vw *AlleleCounterWriter) writeHeader() error {
	var hdr [16]byte
	copy(hdr[0:4], vcacMagic[:])
	binary.LittleEndian.PutUint32(hdr[4:8], vcacVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], vw.sampleCount)
	binary.LittleEndian.PutUint64(hdr[12:16], vw.variantCount)
	_, err := vw.w.Write(hdr[:])
	return err
}

// WriteVariant appends one variant record: five NUL-terminated
// strings followed by 2*sample_count int8 allele counts. counts[i] is
// (ref_i8, alt_i8) for sample i; a missing genotype's counts are
// both -1.
func (vw *AlleleCounterWriter) WriteVariant(chrom, pos, id, ref, alt string, counts [][2]int8) error {
	if len(counts) != int(vw.sampleCount) {
		return fmt.Errorf("vcac: expected %d samples, got %d", vw.sampleCount, len(counts))
	}
	for _, s := range []string{chrom, pos, id, ref, alt} {
		if _, err := io.WriteString(vw.w, s); err != nil {
			return err
		}
		if _, err := vw.w.Write([]byte{0}); err != nil {
			return err
		}
	}
	buf := make([]byte, 2*len(counts))
	for i, c := range counts {
		buf[2*i] = byte(c[0])
		buf[2*i+1] = byte(c[1])
	}
	if _, err := vw.w.Write(buf); err != nil {
		return err
	}
	vw.variantCount++
	return nil
}

// Close patches the variant_count field now that the final total is
// known, seeking back to the header.
func (vw *AlleleCounterWriter) Close() error {
	if _, err := vw.w.Seek(12, io.SeekStart); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], vw.variantCount)
	if _, err := vw.w.Write(buf[:]); err != nil {
		return err
	}
	_, err := vw.w.Seek(0, io.SeekEnd)
	return err
}

// VCACHeader is the parsed fixed-size header of a VCAC stream.
type VCACHeader struct {
	Version      uint32
	SampleCount  uint32
	VariantCount uint64
}

// VCACVariant is one decoded variant record.
type VCACVariant struct {
	Chrom, Pos, ID, Ref, Alt string
	Counts                   [][2]int8
}

// AlleleCounterReader decodes a VCAC stream sequentially.
type AlleleCounterReader struct {
	r      *bufio.Reader
	Header VCACHeader
}

// NewAlleleCounterReader reads and validates the 16-byte header.
func NewAlleleCounterReader(r io.Reader) (*AlleleCounterReader, error) {
	br := bufio.NewReader(r)
	var hdr [16]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("vcac: reading header: %w", err)
	}
	if hdr[0] != 'V' || hdr[1] != 'C' || hdr[2] != 'A' || hdr[3] != 'C' {
		return nil, fmt.Errorf("vcac: bad magic")
	}
	return &AlleleCounterReader{
		r: br,
		Header: VCACHeader{
			Version:      binary.LittleEndian.Uint32(hdr[4:8]),
			SampleCount:  binary.LittleEndian.Uint32(hdr[8:12]),
			VariantCount: binary.LittleEndian.Uint64(hdr[12:16]),
		},
	}, nil
}

// Next decodes the next variant record, returning io.EOF when the
// stream is exhausted.
func (vr *AlleleCounterReader) Next() (VCACVariant, error) {
	var v VCACVariant
	strs := make([]string, 5)
	for i := range strs {
		s, err := vr.r.ReadString(0)
		if err != nil {
			if i == 0 && err == io.EOF {
				return v, io.EOF
			}
			return v, fmt.Errorf("vcac: reading record string: %w", err)
		}
		strs[i] = s[:len(s)-1] // drop the NUL terminator
	}
	v.Chrom, v.Pos, v.ID, v.Ref, v.Alt = strs[0], strs[1], strs[2], strs[3], strs[4]
	n := int(vr.Header.SampleCount)
	buf := make([]byte, 2*n)
	if _, err := io.ReadFull(vr.r, buf); err != nil {
		return v, fmt.Errorf("vcac: reading allele counts: %w", err)
	}
	v.Counts = make([][2]int8, n)
	for i := 0; i < n; i++ {
		v.Counts[i] = [2]int8{int8(buf[2*i]), int8(buf[2*i+1])}
	}
	return v, nil
}

// AlleleCounts derives (ref_i8, alt_i8) from a diploid call's two
// allele indices, the per-sample encoding the allele counter tool
// writes to a VCAC stream: allele 0 counts toward ref, every nonzero
// allele toward alt. A missing genotype yields (-1, -1).
func AlleleCounts(a1, a2 int, missing bool) [2]int8 {
	if missing {
		return [2]int8{-1, -1}
	}
	var ref, alt int8
	for _, a := range [2]int{a1, a2} {
		switch a {
		case 0:
			ref++
		default:
			alt++
		}
	}
	return [2]int8{ref, alt}
}
