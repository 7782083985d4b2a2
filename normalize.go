// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"strconv"
)

// SplitRecord is one line emitted by SplitMultiallelic: the rebuilt
// fixed columns plus the recoded FORMAT/sample text, ready to be
// tab-joined by the caller's writer.
type SplitRecord struct {
	Chrom, Pos, ID, Ref, Alt, Qual, Filter, Info []byte
	FormatStr                                    []byte
	Samples                                      [][]byte // recoded ':'-joined sample columns
}

// SplitMultiallelic turns a record with N ALT alleles into N records,
// one per ALT, with INFO and each sample's FORMAT-keyed subfields
// recoded via RecodeSubfield and GT relabeled via RecodeGT. A record
// with a single ALT is returned unchanged, wrapped in a one-element
// slice, so callers can apply the splitter unconditionally.
func SplitMultiallelic(rec Record, headers *Headers) []SplitRecord {
	alts := AltAlleles(rec.Alt)
	n := len(alts)
	if n < 2 {
		sr := SplitRecord{
			Chrom: rec.Chrom, Pos: rec.Pos, ID: rec.ID, Ref: rec.Ref,
			Alt: rec.Alt, Qual: rec.Qual, Filter: rec.Filter, Info: rec.Info,
			Samples: append([][]byte(nil), rec.Samples...),
		}
		if rec.FormatKeys != nil {
			sr.FormatStr = JoinSubfields(rec.FormatKeys)
		}
		return []SplitRecord{sr}
	}

	out := make([]SplitRecord, n)
	infoPairs := parseInfo(rec.Info)
	for a := 1; a <= n; a++ {
		sr := SplitRecord{
			Chrom: rec.Chrom, Pos: rec.Pos, ID: rec.ID, Ref: rec.Ref,
			Alt: alts[a-1], Qual: rec.Qual, Filter: rec.Filter,
		}
		sr.Info = recodeInfo(infoPairs, headers, a, n)
		if rec.FormatKeys != nil {
			sr.FormatStr = JoinSubfields(rec.FormatKeys)
			sr.Samples = make([][]byte, len(rec.Samples))
			for si, sample := range rec.Samples {
				sr.Samples[si] = recodeSample(sample, rec.FormatKeys, headers, a, n)
			}
		}
		out[a-1] = sr
	}
	return out
}

type infoPair struct {
	key, value []byte
	flag       bool // present with no '=' (a flag key, e.g. "DB")
}

func parseInfo(info []byte) []infoPair {
	if len(info) == 0 || (len(info) == 1 && info[0] == '.') {
		return nil
	}
	var pairs []infoPair
	for _, entry := range bytes.Split(info, []byte{';'}) {
		if len(entry) == 0 {
			continue
		}
		if eq := bytes.IndexByte(entry, '='); eq >= 0 {
			pairs = append(pairs, infoPair{key: entry[:eq], value: entry[eq+1:]})
		} else {
			pairs = append(pairs, infoPair{key: entry, flag: true})
		}
	}
	return pairs
}

func recodeInfo(pairs []infoPair, headers *Headers, altIndex, numAlts int) []byte {
	if len(pairs) == 0 {
		return dotField
	}
	var buf bytes.Buffer
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.Write(p.key)
		if p.flag {
			continue
		}
		buf.WriteByte('=')
		decl, ok := headers.Lookup(ScopeInfo, string(p.key))
		number := "."
		if ok {
			number = decl.Number
		}
		values := SplitSubfields(p.value, ',')
		recoded := RecodeSubfield(number, altIndex, numAlts, values)
		buf.Write(JoinSubfields(recoded))
	}
	if buf.Len() == 0 {
		return dotField
	}
	return buf.Bytes()
}

func recodeSample(sample []byte, formatKeys [][]byte, headers *Headers, altIndex, numAlts int) []byte {
	if isMissingToken(sample) {
		return sample
	}
	values := SplitSubfields(sample, ':')
	recoded := make([][]byte, len(formatKeys))
	allDot := true
	for i, key := range formatKeys {
		v := PadSampleValue(values, i)
		keyStr := string(key)
		if keyStr == "GT" {
			recoded[i] = RecodeGT(v, altIndex)
		} else {
			decl, ok := headers.Lookup(ScopeFormat, keyStr)
			number := "."
			if ok {
				number = decl.Number
			}
			sub := SplitSubfields(v, ',')
			recoded[i] = JoinSubfields(RecodeSubfield(number, altIndex, numAlts, sub))
		}
		if !bytes.Equal(recoded[i], dotField) {
			allDot = false
		}
	}
	if allDot {
		return dotField
	}
	return bytes.Join(recoded, []byte{':'})
}

// NormalizedIndel is one output of NormalizeIndel: either a trimmed
// record or, when trimming collapses the variant to null, the
// original line re-emitted verbatim for that ALT.
type NormalizedIndel struct {
	Pos      []byte
	Ref, Alt []byte
	Null     bool // trimming produced ref==alt or an empty allele
}

// NormalizeIndel performs reference-free trimming for a single (ref,
// alt, pos) pair: the caller is responsible for calling this once per
// ALT allele of a multi-ALT line. It retains one leading anchor base
// when trimming a shared prefix, the same rule HGVS left-alignment
// applies, generalized here to a pure byte-prefix/suffix trim with no
// reference-genome lookup; true left-shifting across repeated motifs
// is out of scope.
func NormalizeIndel(pos []byte, ref, alt []byte) NormalizedIndel {
	posInt, err := strconv.ParseInt(string(pos), 10, 64)
	if err != nil {
		return NormalizedIndel{Pos: pos, Ref: ref, Alt: alt, Null: true}
	}

	r, a := ref, alt
	k := commonPrefixLen(r, a)
	if k > 0 {
		trim := k - 1
		r = r[trim:]
		a = a[trim:]
		posInt += int64(trim)
	}
	j := commonSuffixLen(r, a)
	if j > 0 {
		trim := j - 1
		r = r[:len(r)-trim]
		a = a[:len(a)-trim]
	}
	if len(r) == 0 || len(a) == 0 || bytes.Equal(r, a) {
		return NormalizedIndel{Pos: pos, Ref: ref, Alt: alt, Null: true}
	}
	return NormalizedIndel{Pos: []byte(strconv.FormatInt(posInt, 10)), Ref: r, Alt: a}
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}
