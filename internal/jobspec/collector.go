package jobspec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/catalog"
	"github.com/Dvegrod/little-toolset/internal/config"
	"github.com/Dvegrod/little-toolset/internal/prompt"
	"github.com/Dvegrod/little-toolset/internal/utils"
)

// maxListed caps how many catalog entries are shown before a free-text question.
const maxListed = 30

// Collector asks the operator for every JobSpec field, in a fixed order,
// and applies the validation rule of each field.
type Collector struct {
	catalog       catalog.Catalog
	prompt        prompt.Channel
	extra         bool
	user          string
	defaultOutput string

	err error // first read error; later questions are answered with ""
}

// Option configures a Collector
type Option func(*Collector)

// WithExtra enables the optional, advanced questions.
func WithExtra(extra bool) Option {
	return func(c *Collector) { c.extra = extra }
}

// WithUser sets the user whose account associations are offered.
func WithUser(user string) Option {
	return func(c *Collector) { c.user = user }
}

// WithDefaultOutput overrides the output file used when the answer is empty.
func WithDefaultOutput(pattern string) Option {
	return func(c *Collector) {
		if pattern != "" {
			c.defaultOutput = pattern
		}
	}
}

// NewCollector creates a Collector reading from ch and checking answers against cat.
func NewCollector(cat catalog.Catalog, ch prompt.Channel, opts ...Option) *Collector {
	c := &Collector{
		catalog:       cat,
		prompt:        ch,
		defaultOutput: config.DefaultOutputPattern,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs the whole questionnaire and returns the finished JobSpec.
//
// It fails when the catalog has no partitions (catalog.ErrNoPartitions),
// when input ends before a partition is chosen (ErrInputClosed), or when the
// channel or catalog report an error. Invalid numeric answers never fail.
func (c *Collector) Collect() (*JobSpec, error) {
	partitions, err := catalog.Partitions(c.catalog)
	if err != nil {
		return nil, err
	}

	spec := &JobSpec{}

	spec.JobName = c.askName("job name", fmt.Sprintf("Job name [%s]:", DefaultJobName))
	if spec.JobName == "" {
		spec.JobName = DefaultJobName
	}

	profile, err := c.selectPartition(partitions)
	if err != nil {
		return nil, err
	}
	spec.Partition = profile.Name

	spec.Nodes = c.askCount("number of nodes", "Number of nodes", profile.MaxNodes)
	spec.TasksPerNode = c.askCount("tasks per node", "Tasks per node", profile.CpusPerNode)

	timeHint := "blank for the partition default"
	switch {
	case profile.DefaultTimeLimit != "":
		timeHint = fmt.Sprintf("partition default %s, blank to use it", profile.DefaultTimeLimit)
	case profile.MaxTimeLimit != "":
		timeHint = fmt.Sprintf("partition limit %s, blank for the partition default", profile.MaxTimeLimit)
	}
	spec.TimeLimit = c.ask(fmt.Sprintf("Time limit, e.g. 1-00:00:00 or 02:30:00 (%s):", timeHint))

	spec.Output = c.askName("output file", fmt.Sprintf("Output file [%s]:", c.defaultOutput))
	if spec.Output == "" {
		spec.Output = c.defaultOutput
	}

	spec.Email = c.askEmail()

	if c.extra {
		c.collectExtra(spec, profile)
	}

	spec.Commands = c.askBlock("Enter the job commands; finish with Ctrl-D:")

	if c.err != nil {
		return nil, c.err
	}
	return spec, nil
}

// collectExtra asks the optional questions in their fixed order.
func (c *Collector) collectExtra(spec *JobSpec, profile *catalog.PartitionProfile) {
	spec.MemoryMB = c.askMemory(profile.MemPerNodeMB)

	c.offer("Available constraints", c.catalog.ListConstraints())
	spec.Constraints = c.ask("Constraints, comma separated (blank for none):")

	spec.Exclusive = c.confirm("Request exclusive node access?")

	if c.confirm("Do you need GPUs?") {
		spec.Gpu = c.askGpu()
	}

	if c.confirm("Constrain the CPU architecture?") {
		spec.CpuArch = c.ask("CPU architecture feature, e.g. skylake:")
		if spec.CpuArch != "" && spec.Constraints != "" {
			c.prompt.Warn("CPU architecture %q replaces constraints %q", spec.CpuArch, spec.Constraints)
		}
	}

	if c.confirm("Charge a specific account?") {
		c.offer("Your accounts", c.catalog.ListAccounts(c.user))
		spec.Account = c.ask("Account:")
	}

	if c.confirm("Use a specific QOS?") {
		c.offer("Available QOS", c.catalog.ListQosNames())
		spec.Qos = c.ask("QOS:")
	}

	if c.confirm("Is this an array job?") {
		spec.Array = c.ask("Array indices, e.g. 0-9 or 1,3,5%2:")
	}

	if c.confirm("Does this job depend on another job?") {
		spec.Dependency = c.ask("Dependency, e.g. afterok:12345:")
	}

	if c.confirm("Set custom environment variables?") {
		c.prompt.Say("Enter KEY=VALUE lines, blank line to finish.")
		spec.EnvVars = c.askLines("env>")
	}

	if c.confirm("Load environment modules?") {
		c.offer("Available modules", c.catalog.ListModules())
		c.prompt.Say("Enter one module per line, blank line to finish.")
		spec.Modules = c.askLines("module>")
	}
}

// selectPartition lists partitions and re-asks until a valid index is given.
func (c *Collector) selectPartition(names []string) (*catalog.PartitionProfile, error) {
	c.prompt.Say("Available partitions:")
	for i, name := range names {
		c.prompt.Say("  %d) %s", i+1, name)
	}

	question := fmt.Sprintf("Select a partition [1-%d]:", len(names))
	for {
		answer, err := c.prompt.Ask(question)
		if errors.Is(err, io.EOF) {
			return nil, ErrInputClosed
		}
		if err != nil {
			return nil, err
		}

		idx, err := ParseBounded("partition", answer, 1, len(names))
		if err != nil {
			c.prompt.Warn("Invalid selection %q; enter a number between 1 and %d", strings.TrimSpace(answer), len(names))
			continue
		}

		profile, err := c.catalog.PartitionProfile(names[idx-1])
		if err != nil {
			return nil, fmt.Errorf("failed to read limits of partition %s: %w", names[idx-1], err)
		}
		utils.PrintDebug("Partition %s: max nodes %d, CPUs/node %d, memory/node %d MB",
			profile.Name, profile.MaxNodes, profile.CpusPerNode, profile.MemPerNodeMB)
		return profile, nil
	}
}

// askCount asks for a node or task count; invalid answers become 1.
func (c *Collector) askCount(field, label string, max int) int {
	answer := c.ask(fmt.Sprintf("%s (1-%d) [1]:", label, max))
	n, err := CountOrOne(field, answer, max)
	if err != nil {
		c.prompt.Warn("Invalid %s (%v); using 1", field, err)
	}
	return n
}

// askName asks for a value used inside a #SBATCH line; whitespace becomes "_".
func (c *Collector) askName(field, question string) string {
	answer := c.ask(question)
	safe := SafeName(answer)
	if safe != answer {
		c.prompt.Warn("Whitespace is not allowed in the %s; using %q", field, safe)
	}
	return safe
}

// askMemory asks for memory per node; invalid answers leave memory unset.
func (c *Collector) askMemory(max int) int {
	answer := c.ask(fmt.Sprintf("Memory per node in MB (1-%d, blank for partition default):", max))
	mem, err := MemoryOrUnset(answer, max)
	if err != nil {
		c.prompt.Warn("Invalid memory request (%v); no memory will be requested", err)
	}
	return mem
}

// askEmail asks whether to notify by email and, if so, where and when.
func (c *Collector) askEmail() *Email {
	if !c.confirm("Receive email notifications?") {
		return nil
	}

	address := c.ask("Email address:")
	if address == "" {
		c.prompt.Warn("No email address given; notifications disabled")
		return nil
	}

	types := c.ask(fmt.Sprintf("Mail types, comma separated, e.g. BEGIN,END,FAIL,ALL [%s]:",
		strings.Join(DefaultMailTypes, ",")))
	return &Email{
		Address: address,
		Types:   ParseMailTypes(types),
	}
}

// askGpu asks for the GPU count and type.
func (c *Collector) askGpu() *GpuRequest {
	gpu := &GpuRequest{}

	if answer := c.ask("GPUs per node (blank to leave unspecified):"); answer != "" {
		n, err := ParseBounded("GPU count", answer, 1, math.MaxInt32)
		if err != nil {
			c.prompt.Warn("Invalid GPU count (%v); count left unspecified", err)
		} else {
			gpu.Count = &n
		}
	}

	types := c.catalog.ListGpuTypes()
	labelled := make([]string, 0, len(types))
	for _, t := range types {
		if catalog.IsMigProfile(t) {
			t += " (MIG)"
		}
		labelled = append(labelled, t)
	}
	c.offer("Available GPU types", labelled)
	gpu.Type = c.ask("GPU type (blank for any):")

	if v, ok := c.catalog.(catalog.Versioned); ok && gpu.Count != nil {
		if version := v.SchedulerVersion(); !catalog.SupportsGpusPerNode(version) {
			c.prompt.Warn("SLURM %s predates --gpus-per-node; sbatch may reject it", version)
		}
	}
	return gpu
}

// confirm asks a yes/no question; only "y" or "Y" is a yes.
func (c *Collector) confirm(question string) bool {
	return utils.IsAffirmative(c.ask(question + " [y/N]:"))
}

// offer shows catalog choices before a free-text question. Empty lists are silent.
func (c *Collector) offer(title string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	c.prompt.Say("%s: %s", title, strings.Join(shown, ", "))
	if len(items) > len(shown) {
		c.prompt.Say("  ... and %d more", len(items)-len(shown))
	}
}

// ask returns the trimmed answer. End of input reads as an empty answer.
func (c *Collector) ask(question string) string {
	return strings.TrimSpace(c.askRaw(question))
}

func (c *Collector) askRaw(question string) string {
	if c.err != nil {
		return ""
	}
	answer, err := c.prompt.Ask(question)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.err = err
		}
		return ""
	}
	return answer
}

// askLines collects lines verbatim until the first blank line.
func (c *Collector) askLines(question string) []string {
	var lines []string
	for {
		line := c.askRaw(question)
		if strings.TrimSpace(line) == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func (c *Collector) askBlock(question string) string {
	if c.err != nil {
		return ""
	}
	block, err := c.prompt.AskBlock(question)
	if err != nil {
		c.err = err
		return ""
	}
	return block
}
