// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package driptide

const unknownVersion = "version unknown"

// Version is set at build time via the linker.
var Version = unknownVersion

// Commit is set at build time via the linker.
var Commit = ""

func IsVersionKnown() bool {
	return Version != unknownVersion
}
