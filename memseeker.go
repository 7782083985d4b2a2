// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"fmt"
	"io"
)

// memSeeker is a growable in-memory buffer implementing
// io.WriteSeeker, used to build a VCAC stream (which needs to patch
// its header after the variant count is known) before copying the
// whole thing to a non-seekable destination like stdout.
type memSeeker struct {
	buf []byte
	pos int
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = len(m.buf)
	default:
		return 0, fmt.Errorf("memSeeker: invalid whence %d", whence)
	}
	newPos := base + int(offset)
	if newPos < 0 {
		return 0, fmt.Errorf("memSeeker: negative position")
	}
	m.pos = newPos
	return int64(newPos), nil
}
