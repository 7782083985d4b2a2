// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bytes"
	"fmt"
	"sync/atomic"
)

var (
	headerMetaPrefix = []byte("##")
	chromPrefix      = []byte("#CHROM")
	headerPrefix     = []byte("#")
)

// ScanHeader consumes in's header region: every line beginning with
// '#' up to and including the #CHROM line, accumulating ##INFO/##FORMAT
// declarations and parsing the sample names off the #CHROM line. When
// in is mmap-backed, dataStart is the
// byte offset of the first data line, ready to hand to
// NewParallelDriver; for sequential inputs it is always 0 and
// unused, since the same iterator continues to serve data lines.
func ScanHeader(in *Input) (headers *Headers, samples *SampleIndex, dataStart int, err error) {
	headers, samples, dataStart, _, err = scanHeaderLines(in, false)
	return
}

// ScanHeaderKeepText behaves like ScanHeader but also returns the
// verbatim header lines (each without its line terminator), for tools
// that pass the header through unchanged (split, normalize).
func ScanHeaderKeepText(in *Input) (headers *Headers, samples *SampleIndex, dataStart int, headerLines [][]byte, err error) {
	return scanHeaderLines(in, true)
}

func scanHeaderLines(in *Input, keepText bool) (headers *Headers, samples *SampleIndex, dataStart int, headerLines [][]byte, err error) {
	headers = NewHeaders()
	lines := in.Lines()
	for {
		line, ok, lerr := lines.Next()
		if lerr != nil {
			return nil, nil, 0, nil, lerr
		}
		if !ok {
			return nil, nil, 0, nil, ErrMissingCHROM
		}
		if len(line) == 0 {
			continue
		}
		if bytes.HasPrefix(line, chromPrefix) {
			samples, err = ParseCHROMLine(line)
			if err != nil {
				return nil, nil, 0, nil, err
			}
			if keepText {
				headerLines = append(headerLines, append([]byte(nil), line...))
			}
			if mli, ok := lines.(*MmapLineIterator); ok {
				dataStart = mli.Pos()
			}
			return headers, samples, dataStart, headerLines, nil
		}
		if bytes.HasPrefix(line, headerMetaPrefix) {
			if decl, id, ok := ParseHeaderDecl(line); ok {
				headers.Add(id, decl)
			}
			if keepText {
				headerLines = append(headerLines, append([]byte(nil), line...))
			}
			continue
		}
		if bytes.HasPrefix(line, headerPrefix) {
			if keepText {
				headerLines = append(headerLines, append([]byte(nil), line...))
			}
			continue
		}
		return nil, nil, 0, nil, ErrMissingCHROM
	}
}

// LineProcessor transforms one parsed data record, writing its result
// to w. A returned error aborts the whole invocation.
type LineProcessor func(rec Record, w *BufWriter) error

// RunLineDriver dispatches data-line processing through
// ParallelDriver when in is mmap-backed, or a single-threaded
// sequential loop otherwise (the stdin fallback). Malformed
// lines are skipped with a warning via warn rather than aborting
// the run.
func RunLineDriver(in *Input, dataStart, userK int, out *BufWriter, proc LineProcessor, warn func(string)) error {
	if in.Mapped != nil {
		driver := NewParallelDriver(in.Mapped.Data, dataStart, userK, out)
		return driver.Run(func(chunkIndex int, data []byte, begin, end int, w *BufWriter, abort *int32) error {
			it := NewMmapLineIterator(data, begin, end)
			for {
				if atomic.LoadInt32(abort) != 0 {
					return nil
				}
				line, ok, err := it.Next()
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if len(line) == 0 {
					continue
				}
				rec, perr := ParseVariantLine(line)
				if perr != nil {
					warn(perr.Error())
					continue
				}
				if perr := proc(rec, w); perr != nil {
					return perr
				}
			}
		})
	}

	for {
		line, ok, err := in.Lines().Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(line) == 0 {
			continue
		}
		rec, perr := ParseVariantLine(line)
		if perr != nil {
			warn(perr.Error())
			continue
		}
		if perr := proc(rec, out); perr != nil {
			return perr
		}
	}
	return out.Flush()
}

// FormatIndex returns the column index of key within FORMAT, or -1 if
// absent.
func FormatIndex(formatKeys [][]byte, key string) int {
	for i, k := range formatKeys {
		if string(k) == key {
			return i
		}
	}
	return -1
}

// ErrUnknownSample is a fatal error: the named sample does not appear
// in the #CHROM line's sample columns.
type ErrUnknownSample struct{ Name string }

func (e ErrUnknownSample) Error() string {
	return fmt.Sprintf("unknown sample name: %s", e.Name)
}
