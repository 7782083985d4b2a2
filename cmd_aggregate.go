// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// aggregateCmd composes C, B, W: it passes each variant's requested
// INFO fields through as a TSV row, then appends an AGGREGATION_SUMMARY
// trailer: one "FIELD: Sum=<v>, Average=<v>" line per aggregated key.
type aggregateCmd struct{}

type fieldStats struct {
	sum   float64
	count int64
}

func (c *aggregateCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	var fieldsFlag string
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	fs.StringVar(&fieldsFlag, "fields", "", "comma-separated INFO keys to aggregate")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx aggregate", Version)
		return 0
	}
	configureLogging(&common)

	var fields []string
	for _, f := range strings.Split(fieldsFlag, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		logrus.Errorf("aggregate: -fields is required")
		return 1
	}

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("aggregate: %s", err)
		return 1
	}
	defer in.Close()

	_, _, dataStart, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("aggregate: %s", err)
		return 1
	}

	stats := make(map[string]*fieldStats, len(fields))
	for _, f := range fields {
		stats[f] = &fieldStats{}
	}
	var mu sync.Mutex

	out := NewBufWriter(stdout, nil)
	out.WriteString("CHROM\tPOS\tID\t" + strings.Join(fields, "\t") + "\n")
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		pairs := parseInfo(rec.Info)
		w.Write(rec.Chrom)
		w.WriteByte('\t')
		w.Write(rec.Pos)
		w.WriteByte('\t')
		w.Write(rec.ID)
		for _, f := range fields {
			w.WriteByte('\t')
			val, ok := lookupInfo(pairs, f)
			if !ok {
				w.WriteByte('.')
				continue
			}
			w.Write(val)
			if x, perr := strconv.ParseFloat(string(val), 64); perr == nil {
				mu.Lock()
				stats[f].sum += x
				stats[f].count++
				mu.Unlock()
			}
		}
		w.WriteByte('\n')
		return w.MaybeFlush()
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("aggregate: %s", err)
		return 1
	}

	out.WriteString("#AGGREGATION_SUMMARY\n")
	for _, f := range fields {
		st := stats[f]
		avg := 0.0
		if st.count > 0 {
			avg = st.sum / float64(st.count)
		}
		out.WriteString(f)
		out.WriteString(": Sum=")
		out.WriteDouble(st.sum)
		out.WriteString(", Average=")
		out.WriteDouble(avg)
		out.WriteByte('\n')
	}
	if err := out.Flush(); err != nil {
		logrus.Errorf("aggregate: %s", err)
		return 1
	}
	return 0
}

func lookupInfo(pairs []infoPair, key string) ([]byte, bool) {
	for _, p := range pairs {
		if string(p.key) == key {
			if p.flag {
				return []byte("1"), true
			}
			return p.value, true
		}
	}
	return nil, false
}
