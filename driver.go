// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"runtime"
	"sync"
	"sync/atomic"
)

const mb = 1 << 20

// ChunkWorkFunc processes one chunk of data[begin:end), a union of
// whole lines, writing its output to w. It must check abort between
// lines and return promptly (dropping remaining output) once set.
type ChunkWorkFunc func(chunkIndex int, data []byte, begin, end int, w *BufWriter, abort *int32) error

// ParallelDriver partitions a mapped region's data lines into K
// worker chunks and runs work over each one, preserving input line
// order in the final output. It is built from two ingredients: a
// precomputed, gap-free boundary table (so chunks never overlap or
// miss a line) and a throttle-style bounded worker pool with
// first-error capture.
type ParallelDriver struct {
	Data       []byte
	DataStart  int // offset of the first byte after the header region
	UserK      int // 0 means auto
	out        *BufWriter
	abort      int32
}

// NewParallelDriver creates a driver over data[dataStart:], writing
// merged output to out. userK is the user-requested thread count (0
// for auto).
func NewParallelDriver(data []byte, dataStart int, userK int, out *BufWriter) *ParallelDriver {
	return &ParallelDriver{Data: data, DataStart: dataStart, UserK: userK, out: out}
}

// chooseK picks a worker count from the user's request, the host's
// concurrency, and the input size: small inputs stay single-threaded,
// and the count never exceeds what keeps each chunk at least 10 MB.
func chooseK(userK, hwConcurrency int, dataSize int64) int {
	k := hwConcurrency
	if userK > 0 && userK < k {
		k = userK
	}
	if dataSize < 10*mb {
		return 1
	}
	if dataSize < 100*mb && k > 4 {
		k = 4
	}
	if maxByData := int(dataSize / (10 * mb)); maxByData < k {
		k = maxByData
	}
	if k < 1 {
		k = 1
	}
	return k
}

// chunkBoundaries computes K+1 chunk boundaries: boundary 0 is
// dataStart, boundary K is fileEnd, and boundary i (0<i<K) is the
// byte immediately after the first '\n' at or after the target
// offset, so every chunk is a union of whole lines. VCF fields never
// embed literal newlines, so no quote-parity tracking is needed, only
// a newline scan.
func chunkBoundaries(data []byte, dataStart int, k int) []int {
	fileEnd := len(data)
	bounds := make([]int, k+1)
	bounds[0] = dataStart
	bounds[k] = fileEnd
	d := fileEnd - dataStart
	for i := 1; i < k; i++ {
		target := dataStart + i*d/k
		if target >= fileEnd {
			bounds[i] = fileEnd
			continue
		}
		nl := findNewline(data, target, fileEnd)
		if nl >= fileEnd {
			bounds[i] = fileEnd
		} else {
			bounds[i] = nl + 1
		}
	}
	// Boundaries must be non-decreasing; a very short tail region can
	// otherwise produce bounds[i] < bounds[i-1].
	for i := 1; i <= k; i++ {
		if bounds[i] < bounds[i-1] {
			bounds[i] = bounds[i-1]
		}
	}
	return bounds
}

// Abort sets the shared cancellation flag. Safe to call from any
// worker or from the caller.
func (d *ParallelDriver) Abort() {
	atomic.StoreInt32(&d.abort, 1)
}

// Aborted reports whether Abort has been called.
func (d *ParallelDriver) Aborted() bool {
	return atomic.LoadInt32(&d.abort) != 0
}

// Run chooses K, computes chunk boundaries, dispatches one goroutine
// per chunk each with its own BufWriter, and flushes chunk outputs to
// d.out in ascending chunk order once all workers finish:
// thread-local buffers populated in parallel, committed to the shared
// fd in index order. A fatal per-chunk error sets the abort flag;
// partial output already flushed is not rolled back.
func (d *ParallelDriver) Run(work ChunkWorkFunc) error {
	dataSize := int64(len(d.Data) - d.DataStart)
	k := chooseK(d.UserK, runtime.GOMAXPROCS(0), dataSize)
	bounds := chunkBoundaries(d.Data, d.DataStart, k)

	chunkBufs := make([]*BufWriter, k)
	errs := make([]error, k)
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		if bounds[i] >= bounds[i+1] {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cw := newMemBufWriter()
			err := work(i, d.Data, bounds[i], bounds[i+1], cw, &d.abort)
			chunkBufs[i] = cw
			errs[i] = err
			if err != nil {
				d.Abort()
			}
		}(i)
	}
	wg.Wait()

	var firstErr error
	for i := 0; i < k; i++ {
		if chunkBufs[i] != nil {
			if _, werr := d.out.Write(chunkBufs[i].buf); werr != nil && firstErr == nil {
				firstErr = werr
			}
		}
		if errs[i] != nil && firstErr == nil {
			firstErr = errs[i]
		}
	}
	if ferr := d.out.Flush(); ferr != nil && firstErr == nil {
		firstErr = ferr
	}
	return firstErr
}

// newMemBufWriter returns a BufWriter with no backing io.Writer,
// intended purely as an in-memory accumulator whose .buf is later
// copied into the shared output writer in chunk order.
func newMemBufWriter() *BufWriter {
	return NewBufWriter(discardWriter{}, nil)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
