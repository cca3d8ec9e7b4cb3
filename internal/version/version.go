package version

import "github.com/fatih/color"

// Version information for the stylint CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	major = "0"
	minor = "3"
	patch = "0"

	// Version is the semantic version of the CLI.
	Version = major + "." + minor + "." + patch

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the uncolored version string, for machine output (SARIF
// tool metadata, --version piping).
func Plain() string {
	return Version
}

// Colored returns the version with each component tinted, for terminals.
func Colored() string {
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch)
}
