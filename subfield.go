// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
)

var dotField = []byte{'.'}

// gCombinations returns the number of diploid genotype combinations
// for n+1 alleles (REF plus n ALTs): (n+1)(n+2)/2.
func gCombinations(numAlts int) int {
	n := numAlts
	return (n + 1) * (n + 2) / 2
}

// gIndex computes idx(i,j) = ((2N+1-i)*i)/2 + (j-i) for the canonical
// VCF genotype-likelihood ordering, 0 <= i <= j.
func gIndex(numAlts, i, j int) int {
	n := numAlts
	return ((2*n+1-i)*i)/2 + (j - i)
}

// RecodeSubfield projects a comma-separated value vector down to the
// subset implied by choosing ALT allele altIndex (1-based) out of
// numAlts total ALTs, per the declared Number cardinality (A, R, G,
// 1, or a fixed/unbounded count). On a length mismatch between values
// and the length the declared number implies, it emits a single "."
// rather than failing (see DESIGN.md's Open Question decision).
func RecodeSubfield(number string, altIndex, numAlts int, values [][]byte) [][]byte {
	switch number {
	case "A":
		if len(values) != numAlts {
			return [][]byte{dotField}
		}
		return [][]byte{values[altIndex-1]}
	case "R":
		if len(values) != numAlts+1 {
			return [][]byte{dotField}
		}
		return [][]byte{values[0], values[altIndex]}
	case "G":
		want := gCombinations(numAlts)
		if len(values) != want {
			return [][]byte{dotField}
		}
		i00 := gIndex(numAlts, 0, 0)
		i0a := gIndex(numAlts, 0, altIndex)
		iaa := gIndex(numAlts, altIndex, altIndex)
		return [][]byte{values[i00], values[i0a], values[iaa]}
	case "1":
		if len(values) != 1 {
			return [][]byte{dotField}
		}
		return values
	default:
		// "." or a fixed integer: cardinality is independent of ALT
		// choice, so the value passes through unchanged.
		return values
	}
}

// JoinSubfields re-joins a recoded value vector with ',', the inverse
// of the comma-split that produced it.
func JoinSubfields(values [][]byte) []byte {
	return bytes.Join(values, []byte{','})
}

// RecodeGT relabels a GT subfield when a multi-allelic site is split
// to one ALT: allele 0 stays 0, the chosen ALT index becomes 1, every
// other allele becomes missing ("."). The phasing separator is
// normalized to '/' after splitting.
func RecodeGT(gt []byte, altIndex int) []byte {
	a, b, _, ok := splitAlleles(gt)
	if !ok {
		return relabelAllele(gt, altIndex)
	}
	ra := relabelAllele(a, altIndex)
	rb := relabelAllele(b, altIndex)
	out := make([]byte, 0, len(ra)+1+len(rb))
	out = append(out, ra...)
	out = append(out, '/')
	out = append(out, rb...)
	return out
}

func relabelAllele(tok []byte, altIndex int) []byte {
	if isMissingToken(tok) {
		return dotField
	}
	n, ok := parseAlleleIndex(tok)
	if !ok {
		return dotField
	}
	switch {
	case n == 0:
		return []byte{'0'}
	case n == altIndex:
		return []byte{'1'}
	default:
		return dotField
	}
}
