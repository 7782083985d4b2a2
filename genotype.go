// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
)

// Genotype codes.
const (
	GTHomRef  int8 = 0
	GTHet     int8 = 1
	GTHomAlt  int8 = 2
	GTMissing int8 = -1
)

// splitAlleles locates the '/' or '|' separator in a GT subfield and
// returns the two allele tokens plus whether the separator indicated
// phasing. ok is false for a haploid call (no separator present).
func splitAlleles(gt []byte) (a, b []byte, phased, ok bool) {
	sepIdx := -1
	sawPipe := false
	for i, c := range gt {
		if c == '/' || c == '|' {
			sepIdx = i
			sawPipe = c == '|'
			break
		}
	}
	if sepIdx < 0 {
		return nil, nil, false, false // haploid: no separator
	}
	return gt[:sepIdx], gt[sepIdx+1:], sawPipe, true
}

func isMissingToken(tok []byte) bool {
	return len(tok) == 0 || (len(tok) == 1 && tok[0] == '.')
}

func parseAlleleIndex(tok []byte) (int, bool) {
	if isMissingToken(tok) {
		return 0, false
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// CodeDiploidBiallelic parses a GT subfield into the compact
// {homRef=0, het=1, homAlt=2, missing=-1} code. Haploid calls (no
// '/' or '|' separator) are treated as missing.
func CodeDiploidBiallelic(gt []byte) int8 {
	if bytes.Equal(gt, []byte{'.'}) {
		return GTMissing
	}
	a, b, _, ok := splitAlleles(gt)
	if !ok {
		return GTMissing // haploid
	}
	if isMissingToken(a) || isMissingToken(b) {
		return GTMissing
	}
	ai, aok := parseAlleleIndex(a)
	bi, bok := parseAlleleIndex(b)
	if !aok || !bok {
		return GTMissing
	}
	switch {
	case ai == 0 && bi == 0:
		return GTHomRef
	case ai == bi:
		if ai == 1 {
			return GTHomAlt
		}
		return GTMissing // equal nonzero but not allele 1: not biallelic
	case ai == 0 || bi == 0:
		return GTHet
	default:
		return GTMissing // both nonzero and distinct: not biallelic
	}
}

// codeDiploidBiallelicInbreeding is the inbreeding tool's distinct
// encoder: an equal nonzero pair (e.g. "2/2") maps to homAlt (2)
// rather than missing when collapseHomAltMulti is set, instead of
// always treating it as missing. See DESIGN.md for the decision
// record.
func codeDiploidBiallelicInbreeding(gt []byte, collapseHomAltMulti bool) int8 {
	a, b, _, ok := splitAlleles(gt)
	if !ok {
		return GTMissing
	}
	if isMissingToken(a) || isMissingToken(b) {
		return GTMissing
	}
	ai, aok := parseAlleleIndex(a)
	bi, bok := parseAlleleIndex(b)
	if !aok || !bok {
		return GTMissing
	}
	switch {
	case ai == 0 && bi == 0:
		return GTHomRef
	case ai == bi:
		if collapseHomAltMulti || ai == 1 {
			return GTHomAlt
		}
		return GTMissing
	case ai == 0 || bi == 0:
		return GTHet
	default:
		return GTMissing
	}
}

// CodeAnyDiploid returns the raw allele indices and phasing flag for a
// GT subfield, without collapsing to the biallelic 0/1/2 scheme.
// missing is true for any missing or haploid call.
func CodeAnyDiploid(gt []byte) (a1, a2 int, phased bool, missing bool) {
	al, bl, ph, ok := splitAlleles(gt)
	if !ok {
		return 0, 0, false, true
	}
	if isMissingToken(al) || isMissingToken(bl) {
		return 0, 0, ph, true
	}
	ai, aok := parseAlleleIndex(al)
	bi, bok := parseAlleleIndex(bl)
	if !aok || !bok {
		return 0, 0, ph, true
	}
	return ai, bi, ph, false
}

// AlleleSum returns the sum of allele indices, preserving
// multi-allelic values, or (0, false) if the genotype is missing.
// Used by the LD tool's allele-count encoding.
func AlleleSum(gt []byte) (int32, bool) {
	a1, a2, _, missing := CodeAnyDiploid(gt)
	if missing {
		return 0, false
	}
	return int32(a1 + a2), true
}

// IsMissingGT reports whether any allele token in gt is missing.
func IsMissingGT(gt []byte) bool {
	a, b, _, ok := splitAlleles(gt)
	if !ok {
		return isMissingToken(gt)
	}
	return isMissingToken(a) || isMissingToken(b)
}
