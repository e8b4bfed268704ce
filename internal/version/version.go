package version

import "fmt"

// Заполняются линкером при сборке (-ldflags "-X ...").
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildDate string
	Commit    string
	Branch    string
}

// Info returns structured version information. Safe to call at any time.
func Info() VersionInfo {
	return VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
	}
}

// String returns a human-readable build string.
func String() string {
	info := Info()
	return fmt.Sprintf(
		"build %s commit[%s] branch[%s]",
		coalesce(info.BuildDate, "dev"),
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
