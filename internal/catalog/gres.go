package catalog

import (
	"strings"
)

// ParseGresTypes extracts typed GPU names from an sinfo gres column.
//
// Examples:
//
//	gpu:a100:4(S:0-1)                       -> [a100]
//	gpu:4                                   -> []          (untyped)
//	gpu:nvidia_h100_80gb_hbm3_3g.40gb:8(S:0-3),gpu:v100:2 -> [nvidia_h100_80gb_hbm3_3g.40gb v100]
//	(null)                                  -> []
func ParseGresTypes(gres string) []string {
	var types []string
	for _, entry := range strings.Split(gres, ",") {
		entry = strings.TrimSpace(entry)
		if !strings.HasPrefix(entry, "gpu:") && !strings.HasPrefix(entry, "gpu(") {
			continue
		}

		entry = strings.TrimPrefix(entry, "gpu:")
		entry = strings.TrimPrefix(entry, "gpu(")

		// Remove socket information like (S:0-3)
		if idx := strings.Index(entry, "("); idx > 0 {
			entry = entry[:idx]
		}
		entry = strings.TrimSuffix(entry, ")")

		// type:count; a bare count means an untyped GPU
		name, _, hasCount := strings.Cut(entry, ":")
		if !hasCount || name == "" || isDigits(name) {
			continue
		}
		types = append(types, name)
	}
	return types
}

// IsMigProfile reports whether a GPU type names a MIG slice
// (e.g. "nvidia_h100_80gb_hbm3_1g.10gb").
func IsMigProfile(gpuType string) bool {
	return strings.Contains(gpuType, ".") && strings.Contains(gpuType, "_")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
