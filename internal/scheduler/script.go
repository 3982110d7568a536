package scheduler

import (
	"fmt"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/jobspec"
)

// Assemble renders the complete batch script for spec.
// The same spec and extra flag always produce the same text.
func Assemble(spec *jobspec.JobSpec, extra bool) string {
	return Render(spec.Name(), BuildDirectives(spec, extra), BuildSections(spec, extra), spec.Commands)
}

// Render writes the script text from already built parts.
// It only decides whether a section has content or gets its placeholder.
func Render(jobName string, directives []Directive, sections Sections, commands string) string {
	var b strings.Builder

	fmt.Fprintln(&b, "#!/bin/bash")
	for _, d := range directives {
		fmt.Fprintln(&b, d.Line())
	}
	fmt.Fprintln(&b)

	writeJobHeader(&b, jobName)
	fmt.Fprintln(&b)

	writeModules(&b, sections.Modules)
	fmt.Fprintln(&b)

	writeEnvVars(&b, sections.EnvVars)
	fmt.Fprintln(&b)

	writeCommands(&b, commands)
	fmt.Fprintln(&b)

	writeJobFooter(&b)
	return b.String()
}
