// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docprep/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForImageDownloads returns hints for failed image downloads.
// In CI or containers without a proxy configured, outbound HTTPS is the usual culprit.
func ForImageDownloads() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" {
		hints = append(hints, "check outbound HTTPS access or set HTTPS_PROXY")
	}

	hints = append(hints, "failed images keep their remote URL; rerun to retry")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the per-image timeout.
func ForTimeout() string {
	return format("for slow image hosts, use --timeout (e.g. --timeout 30s)")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-docprep/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), ".config/go-docprep") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSourceDir returns hints for a missing or unreadable source directory.
func ForSourceDir() string {
	return format("source_dir must be an existing directory of .md files")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUsage returns the short usage reminder shown with argument errors.
func ForUsage() string {
	return format("usage: docprep [flags] <source_dir> <output_dir>; see docprep help")
}

// ForUnknownProfile returns hints listing the available preview profiles.
func ForUnknownProfile(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available profiles: " + strings.Join(available, ", "))
}

// ForUnknownStage returns hints listing the stages --skip accepts.
func ForUnknownStage(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available stages: " + strings.Join(available, ", "))
}

// ForUnknownStyle returns hints listing the chroma styles --style accepts.
func ForUnknownStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available styles: " + strings.Join(available, ", "))
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
