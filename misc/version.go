// Package misc keeps build time program information.
package misc

import (
	"runtime/debug"
)

const appName = "cssdedup"

// set by linker flags during release builds
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns program name used in logs and temporary file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from, falling back to
// VCS information embedded by the go tool.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
