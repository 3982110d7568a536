package scheduler

import (
	"fmt"
	"io"
	"strings"
)

// Runtime variables SLURM sets inside a running job.
const (
	jobIDVar    = "$SLURM_JOB_ID"
	nodeListVar = "$SLURM_JOB_NODELIST"
)

// Placeholder lines written when a body section is empty.
const (
	modulePlaceholder = "# module load <module_name>"
	envPlaceholder    = "# export VAR=value"
)

// echoEscaper makes a value safe inside a double-quoted echo argument.
var echoEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// writeJobHeader writes the job info header echo block to w.
// Host, node list and job ID come from the job's runtime environment.
func writeJobHeader(w io.Writer, jobName string) {
	fmt.Fprintln(w, "# Print job information")
	fmt.Fprintln(w, "_START_TIME=$SECONDS")
	io.WriteString(w, "_format_time() { local s=$1; printf '%02d:%02d:%02d' $((s/3600)) $((s%3600/60)) $((s%60)); }\n")
	fmt.Fprintln(w, "echo \"========================================\"")
	fmt.Fprintf(w, "echo \"Job ID:    %s\"\n", jobIDVar)
	fmt.Fprintf(w, "echo \"Job Name:  %s\"\n", echoEscaper.Replace(jobName))
	fmt.Fprintln(w, "echo \"Host:      $(hostname)\"")
	fmt.Fprintf(w, "echo \"Nodes:     %s\"\n", nodeListVar)
	fmt.Fprintln(w, "echo \"PWD:       $(pwd)\"")
	fmt.Fprintf(w, "%s\n", "echo \"Started:   $(date '+%Y-%m-%d %T')\"")
	fmt.Fprintln(w, "echo \"========================================\"")
}

// writeJobFooter writes the job completion footer echo block to w.
func writeJobFooter(w io.Writer) {
	fmt.Fprintln(w, "echo \"========================================\"")
	fmt.Fprintf(w, "echo \"Job ID:    %s\"\n", jobIDVar)
	fmt.Fprintln(w, "echo \"Elapsed:   $(_format_time $(($SECONDS - $_START_TIME)))\"")
	fmt.Fprintf(w, "%s\n", "echo \"Completed: $(date '+%Y-%m-%d %T')\"")
	fmt.Fprintln(w, "echo \"========================================\"")
}

// writeModules writes one module load per module, or the placeholder.
func writeModules(w io.Writer, modules []string) {
	fmt.Fprintln(w, "# Load modules")
	if len(modules) == 0 {
		fmt.Fprintln(w, modulePlaceholder)
		return
	}
	for _, m := range modules {
		fmt.Fprintf(w, "module load %s\n", m)
	}
}

// writeEnvVars writes one export per KEY=VALUE line, or the placeholder.
func writeEnvVars(w io.Writer, envVars []string) {
	fmt.Fprintln(w, "# Set environment variables")
	if len(envVars) == 0 {
		fmt.Fprintln(w, envPlaceholder)
		return
	}
	for _, kv := range envVars {
		fmt.Fprintf(w, "export %s\n", kv)
	}
}

// writeCommands writes the operator's commands verbatim, newline terminated.
func writeCommands(w io.Writer, commands string) {
	fmt.Fprintln(w, "# User commands")
	if commands == "" {
		return
	}
	io.WriteString(w, commands)
	if !strings.HasSuffix(commands, "\n") {
		fmt.Fprintln(w)
	}
}
