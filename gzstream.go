// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/pgzip"
)

const gzipChunkSize = 64 * 1024

// gzipMagic is the two-byte magic VCFX sniffs to decide whether a
// stream is gzip/BGZF-compressed.
var gzipMagic = [2]byte{0x1f, 0x8b}

// LineIterator yields one borrowed line at a time, without its
// trailing newline. Implementations backed by a plain mmap return
// slices into the mapping; implementations backed by a decompressing
// reader return slices into an internal buffer that are only valid
// until the next call to Next.
type LineIterator interface {
	// Next advances to the next line and returns it. ok is false at
	// EOF. err is non-nil only on a read/decompress failure.
	Next() (line []byte, ok bool, err error)
}

// GzipLineReader decodes a gzip or BGZF stream (BGZF is simply a
// concatenation of gzip members, which pgzip's reader already handles
// as "multi-member gzip") and yields one line at a time with bounded
// memory: at most one 64 KiB read chunk plus the longest line seen so
// far are held live. Block boundaries internal to BGZF are not
// exposed; random access into a BGZF stream is out of scope.
type GzipLineReader struct {
	gz     *pgzip.Reader
	br     *bufio.Reader
	buf    bytes.Buffer
	closed bool
	err    error
}

// NewGzipLineReader wraps r, which must begin with a gzip/BGZF member.
func NewGzipLineReader(r io.Reader) (*GzipLineReader, error) {
	br := bufio.NewReaderSize(r, gzipChunkSize)
	gz, err := pgzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &GzipLineReader{gz: gz, br: bufio.NewReaderSize(gz, gzipChunkSize)}, nil
}

// IsGzipMagic reports whether the first two bytes of data are the
// gzip magic number.
func IsGzipMagic(data []byte) bool {
	return len(data) >= 2 && data[0] == gzipMagic[0] && data[1] == gzipMagic[1]
}

func (g *GzipLineReader) Next() ([]byte, bool, error) {
	if g.closed {
		return nil, false, g.err
	}
	g.buf.Reset()
	for {
		chunk, err := g.br.ReadSlice('\n')
		g.buf.Write(chunk)
		if err == nil {
			line := g.buf.Bytes()
			return trimEOL(line), true, nil
		}
		if err == bufio.ErrBufferFull {
			continue // line longer than the buffer; keep accumulating
		}
		if err == io.EOF {
			g.closed = true
			if g.buf.Len() == 0 {
				return nil, false, nil
			}
			// Final line with no trailing newline. A gzip error
			// surfaced only now (after the last getline) is reported
			// on the next call.
			g.err = checkGzipFooter(g.gz)
			return trimEOL(g.buf.Bytes()), true, nil
		}
		g.closed = true
		g.err = fmt.Errorf("gzip: %w", err)
		return nil, false, g.err
	}
}

func checkGzipFooter(gz *pgzip.Reader) error {
	// Reading one more byte past the data forces pgzip to validate the
	// final member's CRC/size footer; io.EOF means it validated clean.
	var b [1]byte
	_, err := gz.Read(b[:])
	if err == io.EOF {
		return nil
	}
	return err
}

// Close releases the underlying gzip reader.
func (g *GzipLineReader) Close() error {
	return g.gz.Close()
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return line
}
