package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// gpusPerNodeSince is the first SLURM release accepting --gpus-per-node.
const gpusPerNodeSince = "v19.5.0"

// CanonicalVersion converts a SLURM version such as "23.02.6" into semver
// form ("v23.2.6"). It returns "" when the input cannot be interpreted.
func CanonicalVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" {
		return ""
	}

	// Drop pre-release or build decorations ("23.11.0-0rc1")
	if idx := strings.IndexAny(version, "-+"); idx >= 0 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return ""
		}
		// semver forbids leading zeros ("02")
		parts[i] = strconv.Itoa(n)
	}

	v := "v" + strings.Join(parts, ".")
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// SupportsGpusPerNode reports whether the given SLURM version understands
// --gpus-per-node. Unknown versions are assumed to support it.
func SupportsGpusPerNode(version string) bool {
	v := CanonicalVersion(version)
	if v == "" {
		return true
	}
	return semver.Compare(v, gpusPerNodeSince) >= 0
}
