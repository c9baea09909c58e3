// Package version provides version information for displaygen.
package version

import "runtime/debug"

// Version is the release version, set at build time with ldflags.
var Version = "development"

// Commit is the git commit hash, set at build time with ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
// Without ldflags it falls back to the module version recorded by go install.
func String() string {
	v := Version
	if v == "development" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if Commit != "unknown" {
		return v + "+" + Commit
	}
	return v
}
