package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersionCompatibility checks if results written by writerVersion can be read by readerVersion.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Reader 1.2.0, Writer 1.2.0 -> OK (exact match)
//   - Reader 1.2.1, Writer 1.2.0 -> OK (patch differs)
//   - Reader 1.3.0, Writer 1.2.0 -> ERROR (minor differs)
//   - Reader 2.0.0, Writer 1.2.0 -> ERROR (major differs)
//   - Reader main, Writer 1.2.0 -> OK (dev build, skip check)
func CheckVersionCompatibility(readerVersion, writerVersion string) error {
	readerVersion = strings.TrimPrefix(readerVersion, "v")
	writerVersion = strings.TrimPrefix(writerVersion, "v")

	if readerVersion == "main" || writerVersion == "main" {
		return nil
	}

	readerSemver, err := semver.NewVersion(readerVersion)
	if err != nil {
		return fmt.Errorf("invalid reader version '%s': %w", readerVersion, err)
	}

	writerSemver, err := semver.NewVersion(writerVersion)
	if err != nil {
		return fmt.Errorf("invalid writer version '%s': %w", writerVersion, err)
	}

	if readerSemver.Major() != writerSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but results were written by %d.x.x",
			readerSemver.Major(), writerSemver.Major())
	}

	if readerSemver.Minor() != writerSemver.Minor() {
		return fmt.Errorf("minor version mismatch: engine is %d.%d.x but results were written by %d.%d.x",
			readerSemver.Major(), readerSemver.Minor(),
			writerSemver.Major(), writerSemver.Minor())
	}

	return nil
}
