package catalog

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/config"
	"github.com/Dvegrod/little-toolset/internal/utils"
)

// ErrSlurmNotFound indicates sinfo could not be located
var ErrSlurmNotFound = errors.New("sinfo not found in PATH")

// Runner executes a command and returns its standard output.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	utils.PrintDebug("Running: %s %s", name, strings.Join(args, " "))
	return exec.Command(name, args...).Output()
}

// SlurmCatalog reads the catalog from a live SLURM installation
type SlurmCatalog struct {
	sinfoBin    string
	scontrolBin string
	sacctmgrBin string
	run         Runner
	moduleRoots []string
}

// NewSlurmCatalog locates the SLURM query tools named in cfg.
// sinfo is required; scontrol and sacctmgr only refine or extend the data.
func NewSlurmCatalog(cfg config.SlurmConfig) (*SlurmCatalog, error) {
	sinfo, err := exec.LookPath(cfg.SinfoBin)
	if err != nil {
		return nil, NewCatalogError("SLURM", "locate sinfo", fmt.Errorf("%w: %v", ErrSlurmNotFound, err))
	}
	scontrol, _ := exec.LookPath(cfg.ScontrolBin)
	sacctmgr, _ := exec.LookPath(cfg.SacctmgrBin)

	return &SlurmCatalog{
		sinfoBin:    sinfo,
		scontrolBin: scontrol,
		sacctmgrBin: sacctmgr,
		run:         execRunner,
		moduleRoots: ModulePathFromEnv(),
	}, nil
}

// ListPartitions returns partitions in sinfo order; the default marker "*" is stripped.
func (s *SlurmCatalog) ListPartitions() ([]string, error) {
	output, err := s.run(s.sinfoBin, "-h", "-o", "%P")
	if err != nil {
		return nil, NewCatalogError("SLURM", "list partitions", err)
	}

	var names []string
	for _, line := range splitLines(output) {
		names = append(names, strings.TrimSuffix(line, "*"))
	}
	return utils.UniqueStrings(names), nil
}

// PartitionProfile combines node data from sinfo with partition limits from scontrol.
func (s *SlurmCatalog) PartitionProfile(name string) (*PartitionProfile, error) {
	output, err := s.run(s.sinfoBin, "-h", "-p", name, "-o", "%D|%c|%m|%l")
	if err != nil {
		return nil, NewCatalogError("SLURM", "query partition "+name, err)
	}

	lines := splitLines(output)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPartition, name)
	}

	// %l is the partition's maximum time; only scontrol knows the default
	profile := &PartitionProfile{Name: name}
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			continue
		}

		var nodes, cpus int
		fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &nodes)
		fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &cpus)
		memMB, _ := utils.ParseSizeToMB(parts[2])

		profile.MaxNodes += nodes
		if cpus > profile.CpusPerNode {
			profile.CpusPerNode = cpus
		}
		if memMB > profile.MemPerNodeMB {
			profile.MemPerNodeMB = memMB
		}
		if profile.MaxTimeLimit == "" {
			profile.MaxTimeLimit = timeValue(parts[3])
		}
	}

	if s.scontrolBin != "" {
		if limits, err := s.partitionLimits(name); err == nil {
			applyLimits(profile, limits)
		} else {
			utils.PrintDebug("scontrol limits for %s unavailable: %v", name, err)
		}
	}

	if profile.MaxNodes <= 0 || profile.CpusPerNode <= 0 || profile.MemPerNodeMB <= 0 {
		return nil, &ProfileError{Partition: name, Reason: "sinfo reported no usable node limits"}
	}
	return profile, nil
}

// partitionLimits holds the subset of scontrol partition settings we honour
type partitionLimits struct {
	MaxNodes       int
	MaxCpusPerNode int
	MaxMemMB       int
	DefaultTime    string
	MaxTime        string
}

func (s *SlurmCatalog) partitionLimits(name string) (*partitionLimits, error) {
	output, err := s.run(s.scontrolBin, "show", "partition", name, "-o")
	if err != nil {
		return nil, NewCatalogError("SLURM", "query partition limits", err)
	}
	for _, line := range splitLines(output) {
		if limits := parsePartitionLine(line); limits != nil {
			return limits, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPartition, name)
}

// parsePartitionLine parses a single partition line from `scontrol show partition -o`
func parsePartitionLine(line string) *partitionLimits {
	limits := &partitionLimits{}
	found := false

	for _, field := range strings.Fields(line) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		switch key {
		case "PartitionName":
			found = value != ""
		case "MaxNodes":
			if value != "UNLIMITED" {
				fmt.Sscanf(value, "%d", &limits.MaxNodes)
			}
		case "MaxCPUsPerNode":
			if value != "UNLIMITED" {
				fmt.Sscanf(value, "%d", &limits.MaxCpusPerNode)
			}
		case "MaxMemPerNode":
			if value != "UNLIMITED" {
				limits.MaxMemMB, _ = utils.ParseSizeToMB(value)
			}
		case "DefaultTime":
			limits.DefaultTime = timeValue(value)
		case "MaxTime":
			limits.MaxTime = timeValue(value)
		}
	}

	if !found {
		return nil
	}
	return limits
}

// applyLimits narrows node-derived values to configured partition caps.
func applyLimits(profile *PartitionProfile, limits *partitionLimits) {
	if limits.MaxNodes > 0 && (profile.MaxNodes == 0 || limits.MaxNodes < profile.MaxNodes) {
		profile.MaxNodes = limits.MaxNodes
	}
	if limits.MaxCpusPerNode > 0 && (profile.CpusPerNode == 0 || limits.MaxCpusPerNode < profile.CpusPerNode) {
		profile.CpusPerNode = limits.MaxCpusPerNode
	}
	if limits.MaxMemMB > 0 && (profile.MemPerNodeMB == 0 || limits.MaxMemMB < profile.MemPerNodeMB) {
		profile.MemPerNodeMB = limits.MaxMemMB
	}
	if limits.DefaultTime != "" {
		profile.DefaultTimeLimit = limits.DefaultTime
	}
	if limits.MaxTime != "" {
		profile.MaxTimeLimit = limits.MaxTime
	}
}

// timeValue returns a SLURM time string, or "" when there is no bound.
func timeValue(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToUpper(value) {
	case "", "NONE", "UNLIMITED", "INFINITE", "N/A":
		return ""
	}
	return value
}

// ListConstraints returns the node features advertised by sinfo.
func (s *SlurmCatalog) ListConstraints() []string {
	output, err := s.run(s.sinfoBin, "-h", "-o", "%f")
	if err != nil {
		utils.PrintDebug("sinfo features unavailable: %v", err)
		return nil
	}

	var features []string
	for _, line := range splitLines(output) {
		if line == "(null)" {
			continue
		}
		features = append(features, utils.SplitList(line)...)
	}
	return utils.UniqueStrings(features)
}

// ListGpuTypes returns the typed GPUs found in the gres column of sinfo.
func (s *SlurmCatalog) ListGpuTypes() []string {
	output, err := s.run(s.sinfoBin, "-h", "-o", "%G")
	if err != nil {
		utils.PrintDebug("sinfo gres unavailable: %v", err)
		return nil
	}

	var types []string
	for _, line := range splitLines(output) {
		types = append(types, ParseGresTypes(line)...)
	}
	return utils.UniqueStrings(types)
}

// ListAccounts returns the accounts the user is associated with.
func (s *SlurmCatalog) ListAccounts(user string) []string {
	if s.sacctmgrBin == "" || user == "" {
		return nil
	}
	output, err := s.run(s.sacctmgrBin, "-n", "-P", "show", "assoc", "user="+user, "format=account")
	if err != nil {
		utils.PrintDebug("sacctmgr associations unavailable: %v", err)
		return nil
	}
	return utils.UniqueStrings(splitLines(output))
}

// ListQosNames returns every QOS defined in the accounting database.
func (s *SlurmCatalog) ListQosNames() []string {
	if s.sacctmgrBin == "" {
		return nil
	}
	output, err := s.run(s.sacctmgrBin, "-n", "-P", "show", "qos", "format=name")
	if err != nil {
		utils.PrintDebug("sacctmgr qos unavailable: %v", err)
		return nil
	}
	return utils.UniqueStrings(splitLines(output))
}

// ListModules returns the environment modules found under MODULEPATH.
func (s *SlurmCatalog) ListModules() []string {
	return ScanModules(s.moduleRoots)
}

// SchedulerVersion returns the SLURM version reported by sinfo, or "" if unknown.
func (s *SlurmCatalog) SchedulerVersion() string {
	output, err := s.run(s.sinfoBin, "--version")
	if err != nil {
		return ""
	}
	// Output looks like "slurm 23.02.6"
	parts := strings.Fields(strings.TrimSpace(string(output)))
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}

// splitLines returns the trimmed, non-empty lines of command output
func splitLines(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
