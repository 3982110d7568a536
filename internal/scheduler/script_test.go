package scheduler

import (
	"strings"
	"testing"
)

func TestAssembleBasicScenario(t *testing.T) {
	script := Assemble(baseSpec(), false)

	if !strings.HasPrefix(script, "#!/bin/bash\n") {
		t.Fatalf("script does not start with a shebang:\n%s", script)
	}

	for _, want := range []string{
		"#SBATCH --job-name=job\n",
		"#SBATCH --partition=compute\n",
		"#SBATCH --nodes=4\n",
		"#SBATCH --ntasks-per-node=8\n",
		"#SBATCH --output=slurm-%j.out\n",
		"\n# module load <module_name>\n",
		"\n# export VAR=value\n",
		"# User commands\necho hi\n",
		"$SLURM_JOB_ID",
		"$SLURM_JOB_NODELIST",
		"$(hostname)",
		"Completed:",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}

	for _, unwanted := range []string{"--time", "--mem", "--mail-user", "--mail-type"} {
		if strings.Contains(script, unwanted) {
			t.Errorf("script should not contain %q", unwanted)
		}
	}
}

func TestAssembleSectionOrder(t *testing.T) {
	script := Assemble(fullSpec(), true)

	order := []string{
		"#!/bin/bash",
		"#SBATCH --job-name=job",
		"#SBATCH --dependency=afterok:42",
		"# Print job information",
		"# Load modules\nmodule load gcc/12.2.0\n",
		"# Set environment variables\nexport OMP_NUM_THREADS=4\n",
		"# User commands\necho hi\n",
		"Elapsed:",
	}
	last := -1
	for _, part := range order {
		idx := strings.Index(script, part)
		if idx < 0 {
			t.Fatalf("script missing %q:\n%s", part, script)
		}
		if idx <= last {
			t.Errorf("%q is out of order", part)
		}
		last = idx
	}

	// every directive line comes before the body
	body := strings.Index(script, "# Print job information")
	if strings.LastIndex(script, "#SBATCH") > body {
		t.Errorf("directive found after the header")
	}
}

func TestAssembleExtraOffUsesPlaceholders(t *testing.T) {
	script := Assemble(fullSpec(), false)

	if strings.Contains(script, "module load gcc") || strings.Contains(script, "export OMP_NUM_THREADS") {
		t.Errorf("optional sections rendered with extra off:\n%s", script)
	}
	for _, unwanted := range []string{"--mem", "--constraint", "--exclusive", "--gpus-per-node", "--gres", "--account", "--qos", "--array", "--dependency"} {
		if strings.Contains(script, unwanted) {
			t.Errorf("optional directive %q rendered with extra off", unwanted)
		}
	}
	if !strings.Contains(script, modulePlaceholder) || !strings.Contains(script, envPlaceholder) {
		t.Errorf("placeholders missing:\n%s", script)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	for _, extra := range []bool{false, true} {
		spec := fullSpec()
		first := Assemble(spec, extra)
		second := Assemble(spec, extra)
		if first != second {
			t.Errorf("extra=%v: output differs between runs", extra)
		}
	}
}

func TestAssembleDoesNotMutateSpec(t *testing.T) {
	spec := fullSpec()
	before := *spec
	Assemble(spec, true)
	if spec.JobName != before.JobName || spec.Commands != before.Commands || spec.Gpu != before.Gpu {
		t.Errorf("Assemble modified the job specification")
	}
}

func TestAssembleCommands(t *testing.T) {
	tests := []struct {
		name     string
		commands string
		want     string
	}{
		{"verbatim", "srun ./a\n  echo  $X\n", "# User commands\nsrun ./a\n  echo  $X\n\n"},
		{"missing newline", "echo hi", "# User commands\necho hi\n\n"},
		{"empty", "", "# User commands\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec()
			spec.Commands = tt.commands
			if script := Assemble(spec, false); !strings.Contains(script, tt.want) {
				t.Errorf("commands block missing %q:\n%s", tt.want, script)
			}
		})
	}
}

func TestAssembleBodyLinesVerbatim(t *testing.T) {
	spec := baseSpec()
	spec.Modules = []string{"cuda/12.1 cudnn/8.9", "gcc"}
	spec.EnvVars = []string{"MSG='a  b'", "PATH=$HOME/bin:$PATH"}

	script := Assemble(spec, true)
	for _, want := range []string{
		"# Load modules\nmodule load cuda/12.1 cudnn/8.9\nmodule load gcc\n",
		"# Set environment variables\nexport MSG='a  b'\nexport PATH=$HOME/bin:$PATH\n",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestAssembleEscapesJobNameInHeader(t *testing.T) {
	spec := baseSpec()
	spec.JobName = `run "$HOME"`

	script := Assemble(spec, false)
	if !strings.Contains(script, `echo "Job Name:  run_\"\$HOME\""`) {
		t.Errorf("job name not escaped:\n%s", script)
	}
}
