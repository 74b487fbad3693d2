// Package buildinfo centralises build metadata for the lazystage binary.
// The linker injects values into cmd/lazystage/main.go; main() calls Set()
// to forward them here so every other package can query them.
package buildinfo

import "runtime/debug"

// Info holds the metadata describing one build of the binary.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

var current = Info{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// Set stores the build metadata received from linker-injected variables.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// Get returns the current build metadata.
func Get() Info {
	return current
}

// Version returns the build version string.
func Version() string { return current.Version }

// Commit returns the build commit hash.
func Commit() string { return current.Commit }

// Date returns the build date string.
func Date() string { return current.Date }

// BuiltBy returns the build agent string.
func BuiltBy() string { return current.BuiltBy }

// Enrich fills metadata left at its defaults from
// runtime/debug.ReadBuildInfo: the VCS revision stands in for the commit
// and the Go version for the build agent.
func Enrich() {
	if current.Commit != "none" && current.BuiltBy != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if current.Commit == "none" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				current.Commit = setting.Value
			}
		}
	}
	if current.BuiltBy == "unknown" {
		current.BuiltBy = info.GoVersion
	}
}
