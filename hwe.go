// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// logFactorialTable returns log(0!), log(1!), ..., log(n!).
func logFactorialTable(n int) []float64 {
	table := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		table[i] = table[i-1] + math.Log(float64(i))
	}
	return table
}

// HWExactTest computes the Hardy-Weinberg exact test p-value for
// observed genotype counts. It enumerates every heterozygote count
// consistent with the observed allele counts,
// weighting each by its exact multinomial log-probability, then sums
// the probability mass at or below the observed configuration's
// probability (within a 1e-12 tolerance).
func HWExactTest(homRef, het, homAlt int) float64 {
	n := homRef + het + homAlt
	if n == 0 {
		return 1.0
	}
	x := 2*homAlt + het
	y := 2*homRef + het
	if x+y != 2*n {
		return 1.0
	}

	logFact := logFactorialTable(2 * n)

	type config struct {
		het  int
		logP float64
	}
	var configs []config
	p := float64(y) / float64(x+y)
	q := float64(x) / float64(x+y)
	var logP, logQ, log2pq float64
	if p > 0 {
		logP = math.Log(p)
	}
	if q > 0 {
		logQ = math.Log(q)
	}
	if p > 0 && q > 0 {
		log2pq = math.Log(2 * p * q)
	}

	maxA := x
	if y < maxA {
		maxA = y
	}
	var observedLogP float64
	observedSet := false
	for a := 0; a <= maxA; a++ {
		if (y-a)%2 != 0 || (x-a)%2 != 0 {
			continue
		}
		homRefPrime := (y - a) / 2
		homAltPrime := (x - a) / 2
		if homRefPrime < 0 || homAltPrime < 0 {
			continue
		}
		// log C(N; homRef', a, homAlt') = logFact[N] - logFact[homRef'] - logFact[a] - logFact[homAlt']
		logC := logFact[n] - logFact[homRefPrime] - logFact[a] - logFact[homAltPrime]
		lp := logC
		if homRefPrime > 0 {
			lp += float64(2*homRefPrime) * logP
		}
		if a > 0 {
			lp += float64(a) * log2pq
		}
		if homAltPrime > 0 {
			lp += float64(2*homAltPrime) * logQ
		}
		configs = append(configs, config{het: a, logP: lp})
		if a == het {
			observedLogP = lp
			observedSet = true
		}
	}
	if !observedSet || len(configs) == 0 {
		return 1.0
	}

	logPs := make([]float64, len(configs))
	for i, c := range configs {
		logPs[i] = c.logP
	}
	logTotal := floats.LogSumExp(logPs)

	var sumAtOrBelow float64
	const tol = 1e-12
	for _, c := range configs {
		if c.logP <= observedLogP+tol {
			sumAtOrBelow += math.Exp(c.logP - logTotal)
		}
	}

	pvalue := sumAtOrBelow
	if pvalue < 0 {
		pvalue = 0
	}
	if pvalue > 1 {
		pvalue = 1
	}
	return pvalue
}
