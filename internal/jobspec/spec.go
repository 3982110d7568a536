// Package jobspec holds the job specification and the interactive collector
// that fills it in.
package jobspec

import (
	"strings"
)

// DefaultJobName is used when the operator leaves the job name empty.
const DefaultJobName = "job"

// MemoryUnset marks a job without a memory request.
const MemoryUnset = 0

// DefaultMailTypes applies when an address is given without mail types.
var DefaultMailTypes = []string{"END", "FAIL"}

// Email holds notification settings
type Email struct {
	Address string
	Types   []string // SLURM mail types, e.g. BEGIN, END, FAIL, ALL
}

// GpuRequest holds GPU requirements
type GpuRequest struct {
	Count *int   // nil when the operator gave no count
	Type  string // GPU model, empty for any
}

// CountOrDefault returns the requested GPU count, or 1 when none was given.
func (g *GpuRequest) CountOrDefault() int {
	if g == nil || g.Count == nil {
		return 1
	}
	return *g.Count
}

// JobSpec is the complete description of one batch job.
//
// The collector is its only writer. Once returned from Collect it is treated
// as read-only by the directive builder and script assembler.
type JobSpec struct {
	JobName      string
	Partition    string
	Nodes        int // always within [1, partition max nodes]
	TasksPerNode int // always within [1, partition CPUs per node]
	TimeLimit    string
	Output       string
	Commands     string

	Email *Email // nil when no notification was requested

	// Extra mode fields. Zero values mean "not requested".
	MemoryMB    int
	Constraints string
	Exclusive   bool
	Gpu         *GpuRequest
	CpuArch     string
	Account     string
	Qos         string
	Array       string
	Dependency  string
	EnvVars     []string // KEY=VALUE lines, input order
	Modules     []string // module names, input order
}

// Name returns the job name with whitespace runs replaced by "_",
// falling back to DefaultJobName. sbatch splits #SBATCH lines on whitespace.
func (s *JobSpec) Name() string {
	if name := SafeName(s.JobName); name != "" {
		return name
	}
	return DefaultJobName
}

// SafeName trims value and replaces inner whitespace runs with "_".
func SafeName(value string) string {
	return strings.Join(strings.Fields(value), "_")
}

// HasMemory reports whether a memory request was stored.
func (s *JobSpec) HasMemory() bool {
	return s.MemoryMB != MemoryUnset
}

// ConstraintValue returns the effective --constraint value.
// A CPU architecture constraint replaces the constraint list.
func (s *JobSpec) ConstraintValue() string {
	if s.CpuArch != "" {
		return s.CpuArch
	}
	return s.Constraints
}

// ScriptFileName returns the name of the generated script: <job name>_slurm.sh.
// "/" in job names is replaced with "--" to keep the file in one directory.
func (s *JobSpec) ScriptFileName() string {
	return strings.ReplaceAll(s.Name(), "/", "--") + "_slurm.sh"
}
