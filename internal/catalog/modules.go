package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/utils"
)

// ModulePathFromEnv splits $MODULEPATH into its directories.
func ModulePathFromEnv() []string {
	return filepath.SplitList(os.Getenv("MODULEPATH"))
}

// ScanModules lists "name/version" entries found in Lmod or Tcl modulefile trees.
// Hidden entries (.version, .modulerc) are skipped and a ".lua" suffix is dropped.
// Unreadable roots are ignored.
func ScanModules(roots []string) []string {
	var modules []string
	for _, root := range roots {
		if root == "" || !utils.DirExists(root) {
			continue
		}
		names, err := os.ReadDir(root)
		if err != nil {
			utils.PrintDebug("Skipping module root %s: %v", root, err)
			continue
		}
		for _, name := range names {
			if strings.HasPrefix(name.Name(), ".") {
				continue
			}
			if !name.IsDir() {
				modules = append(modules, strings.TrimSuffix(name.Name(), ".lua"))
				continue
			}
			versions, err := os.ReadDir(filepath.Join(root, name.Name()))
			if err != nil {
				continue
			}
			for _, version := range versions {
				if strings.HasPrefix(version.Name(), ".") || version.IsDir() {
					continue
				}
				modules = append(modules, name.Name()+"/"+strings.TrimSuffix(version.Name(), ".lua"))
			}
		}
	}
	return utils.UniqueStrings(modules)
}
