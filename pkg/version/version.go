// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version

import "runtime/debug"

// Version is a global variable which is set during compile time via -ld-flags in the `go build` process.
// It has the form vX.Y.Z of the release the binary was built from.
var Version = "binary was not built properly"

// Get returns Version, or the module version recorded by the Go toolchain
// when the binary was installed with go install
func Get() string {
	if Version != "binary was not built properly" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
