// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LDVariant is one variant's allele-count vector and position, used
// by both the streaming and matrix LD modes.
type LDVariant struct {
	Chrom string
	Pos   int
	ID    string
	Codes []int32 // per-sample allele sum; a sentinel marks missing
}

const ldMissing = int32(-1)

// PairwiseR2 computes r² between two equal-length allele-count
// vectors, skipping samples missing in either. Uses
// gonum/stat.Covariance and stat.Variance rather than hand-rolled
// moment accumulation.
func PairwiseR2(a, b []int32) float64 {
	var xs, ys []float64
	for i := range a {
		if a[i] == ldMissing || b[i] == ldMissing {
			continue
		}
		xs = append(xs, float64(a[i]))
		ys = append(ys, float64(b[i]))
	}
	if len(xs) < 2 {
		return 0
	}
	varX := stat.Variance(xs, nil)
	varY := stat.Variance(ys, nil)
	if varX <= 0 || varY <= 0 {
		return 0
	}
	cov := stat.Covariance(xs, ys, nil)
	r := cov / math.Sqrt(varX*varY)
	return r * r
}

// CodesToLD converts per-sample genotype allele sums into an
// LD-ready vector, mapping the "missing" sentinel from AlleleSum onto
// ldMissing.
func CodesToLD(sums []int32, ok []bool) []int32 {
	out := make([]int32, len(sums))
	for i := range sums {
		if ok[i] {
			out[i] = sums[i]
		} else {
			out[i] = ldMissing
		}
	}
	return out
}

// LDPair is one emitted streaming or matrix LD result.
type LDPair struct {
	V1, V2 LDVariant
	R2     float64
}

// LDStreamer implements the streaming LD mode: a FIFO window of the
// most recent W variants. Each new variant is compared against every
// window member; pairs meeting the r² threshold (and, if set, the
// max-distance filter) are emitted. Memory is O(W·M).
type LDStreamer struct {
	Window      int
	Threshold   float64
	MaxDistance int // 0 means unlimited
	deque       []LDVariant
}

// NewLDStreamer creates a streamer with the given window size
// (0 defaults to 1000) and emission threshold.
func NewLDStreamer(window int, threshold float64, maxDistance int) *LDStreamer {
	if window <= 0 {
		window = 1000
	}
	return &LDStreamer{Window: window, Threshold: threshold, MaxDistance: maxDistance}
}

// Push adds v to the window and returns the pairs it forms with
// existing window members that clear the threshold and distance
// filter. v is then appended to the window, evicting the oldest entry
// if the window is now over capacity.
func (s *LDStreamer) Push(v LDVariant) []LDPair {
	var out []LDPair
	for _, prev := range s.deque {
		if s.MaxDistance > 0 {
			dist := v.Pos - prev.Pos
			if dist < 0 {
				dist = -dist
			}
			if dist > s.MaxDistance {
				continue
			}
		}
		r2 := PairwiseR2(prev.Codes, v.Codes)
		if r2 >= s.Threshold {
			out = append(out, LDPair{V1: prev, V2: v, R2: r2})
		}
	}
	s.deque = append(s.deque, v)
	if len(s.deque) > s.Window {
		s.deque = s.deque[1:]
	}
	return out
}

// LDMatrix computes the full symmetric V×V r² matrix for a slice of
// variants loaded into memory (the matrix mode of the LD tool). Rows
// are computed in parallel via the package's throttle pool, using
// gonum/mat for dense storage plus goroutine fan-out for the
// CPU-bound row computation.
func LDMatrix(variants []LDVariant, workers int) *mat.SymDense {
	n := len(variants)
	sym := mat.NewSymDense(n, nil)
	if n == 0 {
		return sym
	}
	var mu sync.Mutex
	if workers <= 0 {
		workers = 1
	}
	thr := throttle{Max: workers}
	for i := 0; i < n; i++ {
		i := i
		thr.Go(func() error {
			row := make([]float64, n)
			row[i] = 1
			for j := i + 1; j < n; j++ {
				row[j] = PairwiseR2(variants[i].Codes, variants[j].Codes)
			}
			mu.Lock()
			for j := i; j < n; j++ {
				sym.SetSym(i, j, row[j])
			}
			mu.Unlock()
			return nil
		})
	}
	thr.Wait()
	return sym
}
