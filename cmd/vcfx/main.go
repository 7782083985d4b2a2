// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Command vcfx dispatches to the toolkit's VCF subcommands.
package main

import "github.com/vcfx-project/vcfx"

func main() {
	vcfx.Main()
}
