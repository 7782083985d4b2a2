// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"math/bits"
)

// findByte returns the index of the first occurrence of target in
// data[start:], or len(data) if target does not occur. It scans a
// machine word at a time using the classic SWAR ("SIMD within a
// register") zero-byte test instead of a byte-by-byte loop, the same
// technique the csvquery scanner uses to build its quote/separator/
// newline bitmaps. This is the portable stand-in for the hand-written
// AVX2/NEON intrinsics a C/C++ implementation would reach for
// (grailbio/bio/biosimd is the real-world example of that approach);
// see DESIGN.md for why VCFX does not ship actual SIMD assembly.
//
// The result is always byte-exact with bytes.IndexByte, which is used
// directly once fewer than 8 bytes remain.
func findByte(data []byte, start int, target byte) int {
	n := len(data)
	i := start
	// Splat target across all 8 bytes of a uint64.
	pattern := uint64(0x0101010101010101) * uint64(target)
	for ; i+8 <= n; i += 8 {
		word := uint64(data[i]) | uint64(data[i+1])<<8 | uint64(data[i+2])<<16 |
			uint64(data[i+3])<<24 | uint64(data[i+4])<<32 | uint64(data[i+5])<<40 |
			uint64(data[i+6])<<48 | uint64(data[i+7])<<56
		x := word ^ pattern
		// Zero-byte test: the lowest byte whose high bit is set in
		// (x-0x01..)&^x is the first zero byte of x. Borrows can also
		// mark bytes above it, which TrailingZeros64 never reaches.
		hasZero := (x - 0x0101010101010101) &^ x & 0x8080808080808080
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
	}
	if rel := bytes.IndexByte(data[i:n], target); rel >= 0 {
		return i + rel
	}
	return n
}

// findNewline returns the byte offset (relative to the start of data)
// of the first '\n' in data[start:end], or end if none is found.
// Byte-exact with the scalar bytes.IndexByte fallback.
func findNewline(data []byte, start, end int) int {
	return findByte(data[:end], start, '\n')
}

// findTab returns the byte offset of the first '\t' in data[start:end],
// or end if none is found.
func findTab(data []byte, start, end int) int {
	return findByte(data[:end], start, '\t')
}

// ByteCursor walks a byte slice locating '\n' and '\t' boundaries at
// close to memory-bandwidth speed via findByte. It holds no state
// beyond the slice itself; callers track their own position.
type ByteCursor struct {
	Data []byte
}

// FindNewline returns the absolute offset of the first '\n' at or
// after p, or len(Data) if none exists.
func (c ByteCursor) FindNewline(p int) int {
	return findNewline(c.Data, p, len(c.Data))
}

// FindTab returns the absolute offset of the first '\t' at or after
// p and before end, or end if none exists.
func (c ByteCursor) FindTab(p, end int) int {
	return findTab(c.Data, p, end)
}
