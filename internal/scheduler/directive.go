// Package scheduler turns a finished job specification into a SLURM batch
// script: the ordered #SBATCH directives, the body sections and the file on disk.
package scheduler

import (
	"fmt"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/config"
	"github.com/Dvegrod/little-toolset/internal/jobspec"
)

// DirectivePrefix starts every scheduler directive line.
const DirectivePrefix = "#SBATCH"

// Directive keys, in emission order.
const (
	KeyJobName      = "job-name"
	KeyPartition    = "partition"
	KeyNodes        = "nodes"
	KeyTasksPerNode = "ntasks-per-node"
	KeyOutput       = "output"
	KeyTime         = "time"
	KeyMailUser     = "mail-user"
	KeyMailType     = "mail-type"
	KeyMem          = "mem"
	KeyConstraint   = "constraint"
	KeyExclusive    = "exclusive"
	KeyGpusPerNode  = "gpus-per-node"
	KeyGres         = "gres"
	KeyAccount      = "account"
	KeyQos          = "qos"
	KeyArray        = "array"
	KeyDependency   = "dependency"
)

// Directive is one scheduler option. Flag directives carry no value.
type Directive struct {
	Key   string
	Value string
	Flag  bool
}

// String renders the directive as an sbatch option, e.g. "--nodes=4" or "--exclusive".
func (d Directive) String() string {
	if d.Flag {
		return "--" + d.Key
	}
	return fmt.Sprintf("--%s=%s", d.Key, d.Value)
}

// Line renders the directive as a script line.
func (d Directive) Line() string {
	return DirectivePrefix + " " + d.String()
}

// Sections are the shell-level body parts that are not directives.
// Nil slices render as commented placeholders.
type Sections struct {
	Modules []string
	EnvVars []string
}

// BuildDirectives maps a job specification to its ordered directive list.
// Optional directives are only considered when extra is set; values that
// were not supplied are omitted, never emitted empty.
func BuildDirectives(spec *jobspec.JobSpec, extra bool) []Directive {
	directives := []Directive{
		{Key: KeyJobName, Value: spec.Name()},
		{Key: KeyPartition, Value: spec.Partition},
		{Key: KeyNodes, Value: fmt.Sprint(spec.Nodes)},
		{Key: KeyTasksPerNode, Value: fmt.Sprint(spec.TasksPerNode)},
		{Key: KeyOutput, Value: outputValue(spec.Output)},
	}

	if spec.TimeLimit != "" {
		directives = append(directives, Directive{Key: KeyTime, Value: spec.TimeLimit})
	}

	// mail-user and mail-type are written together or not at all
	if spec.Email != nil && spec.Email.Address != "" {
		types := spec.Email.Types
		if len(types) == 0 {
			types = jobspec.DefaultMailTypes
		}
		directives = append(directives,
			Directive{Key: KeyMailUser, Value: spec.Email.Address},
			Directive{Key: KeyMailType, Value: strings.Join(types, ",")},
		)
	}

	if !extra {
		return directives
	}

	if spec.HasMemory() {
		directives = append(directives, Directive{Key: KeyMem, Value: fmt.Sprintf("%dM", spec.MemoryMB)})
	}
	if c := spec.ConstraintValue(); c != "" {
		directives = append(directives, Directive{Key: KeyConstraint, Value: c})
	}
	if spec.Exclusive {
		directives = append(directives, Directive{Key: KeyExclusive, Flag: true})
	}
	if gpu := spec.Gpu; gpu != nil {
		if gpu.Count != nil {
			directives = append(directives, Directive{Key: KeyGpusPerNode, Value: fmt.Sprint(*gpu.Count)})
		}
		if gpu.Type != "" {
			directives = append(directives, Directive{
				Key:   KeyGres,
				Value: fmt.Sprintf("gpu:%s:%d", gpu.Type, gpu.CountOrDefault()),
			})
		}
	}

	for _, d := range []Directive{
		{Key: KeyAccount, Value: spec.Account},
		{Key: KeyQos, Value: spec.Qos},
		{Key: KeyArray, Value: spec.Array},
		{Key: KeyDependency, Value: spec.Dependency},
	} {
		if d.Value != "" {
			directives = append(directives, d)
		}
	}
	return directives
}

// BuildSections returns the module and environment lines of the script body.
// Both are nil when extra is off.
func BuildSections(spec *jobspec.JobSpec, extra bool) Sections {
	if !extra {
		return Sections{}
	}
	return Sections{
		Modules: nonBlank(spec.Modules),
		EnvVars: nonBlank(spec.EnvVars),
	}
}

// outputValue keeps the output pattern on one #SBATCH token.
func outputValue(output string) string {
	if safe := jobspec.SafeName(output); safe != "" {
		return safe
	}
	return config.DefaultOutputPattern
}

// nonBlank drops whitespace-only lines and keeps the rest as collected.
func nonBlank(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
