// Package utils provides helpers shared across the dirmap tool.
package utils

import (
	"runtime/debug"
)

const (
	// fallbackVersion is reported when no build information is available.
	fallbackVersion = "v1.0.0"
	developVersion  = "(devel)"
)

// GetApplicationVersion returns the application version recorded in the Go
// build information, falling back to a fixed version string for source builds.
func GetApplicationVersion() string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if buildInformationAvailable && buildInformation.Main.Version != "" && buildInformation.Main.Version != developVersion {
		return buildInformation.Main.Version
	}
	return fallbackVersion
}
