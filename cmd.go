// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

import (
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var handler = Multi{
	"count":          &countCmd{},
	"allele-balance": &alleleBalanceCmd{},
	"hwe":            &hweCmd{},
	"inbreeding":     &inbreedingCmd{},
	"ld":             &ldCmd{},
	"split":          &splitCmd{},
	"normalize":      &normalizeCmd{},
	"allele-counter": &alleleCounterCmd{},
	"aggregate":      &aggregateCmd{},
}

func init() {
	if os.Getenv("GOGC") == "" {
		debug.SetGCPercent(30)
	}
}

// Main is the cmd/vcfx entrypoint: switch to a plain, timestamp-free
// formatter when stderr isn't a TTY so CI logs stay readable, then
// dispatch through the Multi table.
func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.StandardLogger().Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	os.Exit(handler.RunCommand(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
