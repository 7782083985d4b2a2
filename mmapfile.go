// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is a contiguous read-only view of a file's contents. The
// mapping is only valid for the lifetime of one tool invocation; field
// slices handed out by the tokenizer borrow directly from Data and must
// not outlive Close.
type MappedFile struct {
	Data mmap.MMap
	f    *os.File
	size int64
}

// OpenMapped mmaps path for reading. Empty files succeed with a nil
// Data slice and size 0, since mmap of a zero-length file is rejected
// by the OS. A nonzero-size file that cannot be mapped is a fatal
// error to the caller, per spec.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: not found", path)
		} else if os.IsPermission(err) {
			return nil, fmt.Errorf("%s: permission denied", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: stat: %w", path, err)
	}
	if fi.Size() == 0 {
		f.Close()
		return &MappedFile{size: 0}, nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: mmap: %w", path, err)
	}
	return &MappedFile{Data: data, f: f, size: fi.Size()}, nil
}

// Size returns the mapped region's length.
func (m *MappedFile) Size() int64 { return m.size }

// Close unmaps the region and closes the underlying file. It is a
// no-op on an empty mapping.
func (m *MappedFile) Close() error {
	if m.f == nil {
		return nil
	}
	var errs []error
	if m.Data != nil {
		if err := m.Data.Unmap(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.f.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
