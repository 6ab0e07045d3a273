// Package spellingbee provides version information and metadata for the
// spelling-bee solver library.
//
// The version follows semantic versioning and is updated with each release.
package spellingbee

// Version represents the current semantic version of the spelling-bee library.
//
// Pre-1.0: minor versions may carry breaking changes.
const Version = "0.3.0"

// VersionInfo encapsulates version metadata for the spelling-bee library.
type VersionInfo struct {
	// Version contains the semantic version string following semver format
	Version string

	// Name contains the canonical library name for identification purposes
	Name string
}

// GetVersion returns structured version information for the library.
//
// Usage:
//
//	info := GetVersion()
//	slog.Info("Starting solver", "name", info.Name, "version", info.Version)
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		Name:    "spelling-bee",
	}
}
