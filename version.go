// Copyright (C) The VCFX Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package vcfx

// Version is the toolkit's release version, printed by every tool's
// -v/--version flag.
const Version = "1.0.0"
