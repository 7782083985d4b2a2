// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// MmapLineIterator walks a mapped region between [begin, end) yielding
// zero-copy line slices. Trailing '\n' or '\r\n' is excluded. Empty
// lines are yielded; callers skip them.
type MmapLineIterator struct {
	data       []byte
	pos, limit int
}

// NewMmapLineIterator iterates lines in data[begin:end).
func NewMmapLineIterator(data []byte, begin, end int) *MmapLineIterator {
	return &MmapLineIterator{data: data, pos: begin, limit: end}
}

func (it *MmapLineIterator) Next() ([]byte, bool, error) {
	if it.pos >= it.limit {
		return nil, false, nil
	}
	nl := findNewline(it.data, it.pos, it.limit)
	line := it.data[it.pos:nl]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	if nl < it.limit {
		it.pos = nl + 1
	} else {
		it.pos = it.limit
	}
	return line, true, nil
}

// Pos returns the iterator's current absolute offset into data, i.e.
// the start of the next line. Used by the header scan to report
// dataStart, the offset the parallel driver's chunks begin from.
func (it *MmapLineIterator) Pos() int { return it.pos }

// stdinLineIterator is the strictly sequential fallback used when
// input is a pipe and mmap is not available. It wraps bufio.Scanner.
type stdinLineIterator struct {
	sc *bufio.Scanner
}

func newStdinLineIterator(r io.Reader) *stdinLineIterator {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &stdinLineIterator{sc: sc}
}

func (it *stdinLineIterator) Next() ([]byte, bool, error) {
	if !it.sc.Scan() {
		return nil, false, it.sc.Err()
	}
	return it.sc.Bytes(), true, nil
}

// Input represents one opened VCF source, already classified as
// mmap-backed, gzip-decompressing, or sequential stdin.
type Input struct {
	Mapped *MappedFile // non-nil when backed by a memory-mapped file
	lines  LineIterator
	closer io.Closer
}

// OpenInput opens path (or stdin, when path is "-" or empty) and
// selects the appropriate reading strategy. Gzip/BGZF streams are
// detected by magic bytes, not filename suffix, so piped or renamed
// compressed input still decompresses correctly.
func OpenInput(path string, stdin io.Reader) (*Input, error) {
	if path == "" || path == "-" {
		br := bufio.NewReaderSize(stdin, 64*1024)
		magic, _ := br.Peek(2)
		if IsGzipMagic(magic) {
			gz, err := NewGzipLineReader(br)
			if err != nil {
				return nil, err
			}
			return &Input{lines: gz, closer: gz}, nil
		}
		return &Input{lines: newStdinLineIterator(br)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: not found", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var magic [2]byte
	n, _ := f.Read(magic[:])
	f.Close()
	if n >= 2 && IsGzipMagic(magic[:]) {
		gf, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		gz, err := NewGzipLineReader(gf)
		if err != nil {
			gf.Close()
			return nil, err
		}
		return &Input{lines: gz, closer: multiCloser{gz, gf}}, nil
	}

	mf, err := OpenMapped(path)
	if err != nil {
		return nil, err
	}
	return &Input{Mapped: mf, lines: NewMmapLineIterator(mf.Data, 0, len(mf.Data))}, nil
}

// Lines returns the line iterator for this input.
func (in *Input) Lines() LineIterator { return in.lines }

// Close releases any resources held by the input (mapping, file
// handle, or decompressor).
func (in *Input) Close() error {
	var err error
	if in.Mapped != nil {
		err = in.Mapped.Close()
	}
	if in.closer != nil {
		if cerr := in.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
