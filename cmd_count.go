// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"flag"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// countCmd composes C and B: it tokenizes every data line but only
// needs the fact that each line parsed, to report a total count.
type countCmd struct{}

func (c *countCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var common CommonFlags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.VersionRequested() {
		PrintVersion(stdout, "vcfx count", Version)
		return 0
	}
	configureLogging(&common)

	in, err := OpenInput(common.Input, stdin)
	if err != nil {
		logrus.Errorf("count: %s", err)
		return 1
	}
	defer in.Close()

	_, _, dataStart, err := ScanHeader(in)
	if err != nil {
		logrus.Errorf("count: %s", err)
		return 1
	}

	var total int64
	out := NewBufWriter(stdout, nil)
	err = RunLineDriver(in, dataStart, common.ResolveThreads(), out, func(rec Record, w *BufWriter) error {
		atomic.AddInt64(&total, 1)
		return nil
	}, warnFunc(&common))
	if err != nil {
		logrus.Errorf("count: %s", err)
		return 1
	}
	fmt.Fprintf(stdout, "Total Variants: %d\n", total)
	return 0
}

// configureLogging raises the log threshold when -q/--quiet is set.
func configureLogging(c *CommonFlags) {
	if c.Quiet {
		logrus.SetLevel(logrus.ErrorLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// warnFunc returns a per-line warning sink that respects -q/--quiet:
// a malformed line is skipped with a warning on stderr unless quiet.
func warnFunc(c *CommonFlags) func(string) {
	return func(msg string) {
		if !c.Quiet {
			logrus.Warnf("%s", msg)
		}
	}
}
