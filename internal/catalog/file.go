package catalog

import (
	"fmt"
	"os"

	"github.com/Dvegrod/little-toolset/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileCatalog is a catalog described by a YAML document, for clusters
// without SLURM client tools on the preparing host.
//
//	partitions:
//	  - name: compute
//	    max_nodes: 10
//	    cpus_per_node: 16
//	    mem_per_node_mb: 64000
//	    default_time_limit: "1-00:00:00"
//	constraints: [avx2, skylake]
//	gpu_types: [a100]
//	accounts:
//	  "*": [research]
//	qos: [normal, long]
//	modules: [gcc/12.2.0]
type FileCatalog struct {
	Static  `yaml:",inline"`
	Version string `yaml:"slurm_version"`
	Path    string `yaml:"-"`
}

// LoadFileCatalog reads and validates a catalog file.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	if !utils.IsYaml(path) {
		utils.PrintWarning("Catalog file %s does not have a YAML extension", utils.StylePath(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewCatalogError("file", "read "+path, err)
	}

	fc, err := ParseFileCatalog(data)
	if err != nil {
		return nil, NewCatalogError("file", "parse "+path, err)
	}
	fc.Path = path
	return fc, nil
}

// ParseFileCatalog decodes a catalog document.
func ParseFileCatalog(data []byte) (*FileCatalog, error) {
	fc := &FileCatalog{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("invalid catalog YAML: %w", err)
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// SchedulerVersion returns the optional slurm_version field.
func (f *FileCatalog) SchedulerVersion() string {
	return f.Version
}
