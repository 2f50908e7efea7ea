package version

import "github.com/fatih/color"

// Version information for the shebang tool.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the module.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionColor = color.New(color.FgGreen, color.Bold)
	detailColor  = color.New(color.FgHiBlack)
)

// String returns the version with the optional build details appended.
func String() string {
	s := Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}

// Colored renders String for terminals. Colour output follows
// color.NoColor.
func Colored() string {
	s := versionColor.Sprint(Version)
	if GitCommit != "" {
		s += " " + detailColor.Sprint("("+GitCommit+")")
	}
	if BuildDate != "" {
		s += " " + detailColor.Sprint("built "+BuildDate)
	}
	return s
}
