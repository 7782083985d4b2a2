// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"fmt"
)

// Scope identifies whether a header-declared subfield belongs to the
// INFO or FORMAT column.
type Scope int

const (
	ScopeInfo Scope = iota
	ScopeFormat
)

// HeaderDecl captures one ##INFO or ##FORMAT meta-line's declared
// cardinality.
type HeaderDecl struct {
	Scope  Scope
	Number string // one of "A", "R", "G", "1", "." or a decimal integer
}

// Headers maps a subfield ID to its declaration, separately for INFO
// and FORMAT scope (a key may legally appear in both).
type Headers struct {
	Info   map[string]HeaderDecl
	Format map[string]HeaderDecl
}

// NewHeaders returns an empty Headers ready for ParseHeaderDecl.
func NewHeaders() *Headers {
	return &Headers{Info: map[string]HeaderDecl{}, Format: map[string]HeaderDecl{}}
}

// Add records a parsed declaration.
func (h *Headers) Add(id string, d HeaderDecl) {
	switch d.Scope {
	case ScopeInfo:
		h.Info[id] = d
	case ScopeFormat:
		h.Format[id] = d
	}
}

// Lookup returns the declaration for id in the given scope, and
// whether one was found.
func (h *Headers) Lookup(scope Scope, id string) (HeaderDecl, bool) {
	var m map[string]HeaderDecl
	if scope == ScopeInfo {
		m = h.Info
	} else {
		m = h.Format
	}
	d, ok := m[id]
	return d, ok
}

var (
	infoPrefix   = []byte("##INFO=<")
	formatPrefix = []byte("##FORMAT=<")
)

// ParseHeaderDecl recognizes ##INFO=<...> and ##FORMAT=<...> header
// meta-lines and extracts the ID and Number attributes by substring
// search, not a full VCF attribute-value parser: a value ends at the
// first ',' or '>'. Unrecognized prefixes return ok=false.
func ParseHeaderDecl(metaLine []byte) (decl HeaderDecl, id string, ok bool) {
	var scope Scope
	var body []byte
	switch {
	case bytes.HasPrefix(metaLine, infoPrefix):
		scope = ScopeInfo
		body = trimTrailingAngle(metaLine[len(infoPrefix):])
	case bytes.HasPrefix(metaLine, formatPrefix):
		scope = ScopeFormat
		body = trimTrailingAngle(metaLine[len(formatPrefix):])
	default:
		return HeaderDecl{}, "", false
	}
	id, idOK := extractAttr(body, []byte("ID="))
	number, numOK := extractAttr(body, []byte("Number="))
	if !idOK {
		return HeaderDecl{}, "", false
	}
	if !numOK {
		number = "."
	}
	return HeaderDecl{Scope: scope, Number: number}, id, true
}

func trimTrailingAngle(body []byte) []byte {
	if n := len(body); n > 0 && body[n-1] == '>' {
		return body[:n-1]
	}
	return body
}

// extractAttr finds key (e.g. "ID=") as a substring of body and
// returns the text up to the next ',' (or the end of body).
func extractAttr(body []byte, key []byte) (string, bool) {
	idx := bytes.Index(body, key)
	if idx < 0 {
		return "", false
	}
	start := idx + len(key)
	end := bytes.IndexByte(body[start:], ',')
	if end < 0 {
		return string(body[start:]), true
	}
	return string(body[start : start+end]), true
}

// ErrMissingCHROM is returned when the input ends (or data begins)
// without a #CHROM line, a fatal condition.
var ErrMissingCHROM = fmt.Errorf("missing #CHROM line before data")
