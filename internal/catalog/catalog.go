// Package catalog describes what a cluster advertises: partitions and their
// per-node limits, plus the optional lists (constraints, GPU types, accounts,
// QOS, modules) used to offer choices while a job is being described.
package catalog

import (
	"errors"
	"fmt"

	"github.com/Dvegrod/little-toolset/internal/utils"
)

var (
	// ErrNoPartitions indicates the catalog could not produce any partition
	ErrNoPartitions = errors.New("no partitions available")

	// ErrUnknownPartition indicates a profile was requested for a partition the catalog does not know
	ErrUnknownPartition = errors.New("unknown partition")
)

// PartitionProfile holds the limits of one partition
type PartitionProfile struct {
	Name             string `yaml:"name"`
	MaxNodes         int    `yaml:"max_nodes"`
	CpusPerNode      int    `yaml:"cpus_per_node"`
	MemPerNodeMB     int    `yaml:"mem_per_node_mb"`
	DefaultTimeLimit string `yaml:"default_time_limit"` // scheduler-native, e.g. "1-00:00:00"
	MaxTimeLimit     string `yaml:"max_time_limit"`
}

// Catalog is the read-only view of cluster capacity and metadata.
// The optional lists may be empty; callers fall back to free-text entry.
type Catalog interface {
	ListPartitions() ([]string, error)
	PartitionProfile(name string) (*PartitionProfile, error)
	ListConstraints() []string
	ListGpuTypes() []string
	ListAccounts(user string) []string
	ListQosNames() []string
	ListModules() []string
}

// Versioned is implemented by catalogs that know the scheduler version.
type Versioned interface {
	SchedulerVersion() string
}

// Partitions lists partitions and turns an empty result into ErrNoPartitions.
func Partitions(c Catalog) ([]string, error) {
	names, err := c.ListPartitions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPartitions, err)
	}
	names = utils.UniqueStrings(names)
	if len(names) == 0 {
		return nil, ErrNoPartitions
	}
	return names, nil
}

// Static is an in-memory catalog. FileCatalog decodes into it.
type Static struct {
	Partitions  []PartitionProfile  `yaml:"partitions"`
	Constraints []string            `yaml:"constraints"`
	GpuTypes    []string            `yaml:"gpu_types"`
	Accounts    map[string][]string `yaml:"accounts"` // user -> accounts; "*" applies to everyone
	Qos         []string            `yaml:"qos"`
	Modules     []string            `yaml:"modules"`
}

func (s *Static) ListPartitions() ([]string, error) {
	names := make([]string, 0, len(s.Partitions))
	for _, p := range s.Partitions {
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *Static) PartitionProfile(name string) (*PartitionProfile, error) {
	for i := range s.Partitions {
		if s.Partitions[i].Name == name {
			p := s.Partitions[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPartition, name)
}

func (s *Static) ListConstraints() []string { return s.Constraints }

func (s *Static) ListGpuTypes() []string { return s.GpuTypes }

func (s *Static) ListAccounts(user string) []string {
	if accounts, ok := s.Accounts[user]; ok {
		return accounts
	}
	return s.Accounts["*"]
}

func (s *Static) ListQosNames() []string { return s.Qos }

func (s *Static) ListModules() []string { return s.Modules }

// Validate checks that every partition carries usable limits.
func (s *Static) Validate() error {
	seen := make(map[string]bool)
	for i, p := range s.Partitions {
		if p.Name == "" {
			return fmt.Errorf("partition #%d has no name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("partition %s is listed twice", p.Name)
		}
		seen[p.Name] = true
		if p.MaxNodes <= 0 || p.CpusPerNode <= 0 || p.MemPerNodeMB <= 0 {
			return &ProfileError{Partition: p.Name, Reason: "max_nodes, cpus_per_node and mem_per_node_mb must be positive"}
		}
	}
	return nil
}
