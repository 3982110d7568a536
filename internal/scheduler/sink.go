package scheduler

import (
	"fmt"
	"path/filepath"

	"github.com/Dvegrod/little-toolset/internal/jobspec"
	"github.com/Dvegrod/little-toolset/internal/utils"
)

// Sink receives the finished script.
type Sink interface {
	// Write stores the script for spec and returns where it went.
	Write(spec *jobspec.JobSpec, script string) (string, error)
}

// FileSink writes scripts as executable files named <job name>_slurm.sh.
type FileSink struct {
	Dir string // "" means the working directory
}

// Write creates or replaces the script file and marks it executable.
func (s FileSink) Write(spec *jobspec.JobSpec, script string) (string, error) {
	path := filepath.Join(s.Dir, spec.ScriptFileName())

	if s.Dir != "" {
		if err := utils.EnsureDir(s.Dir); err != nil {
			return "", NewScriptCreationError(spec.Name(), path, fmt.Errorf("%w: %v", ErrOutputDirMissing, err))
		}
	}

	if utils.FileExists(path) {
		utils.PrintWarning("Overwriting existing script %s", utils.StylePath(path))
	}
	if err := utils.WriteExecutable(path, []byte(script)); err != nil {
		return "", NewScriptCreationError(spec.Name(), path, err)
	}
	utils.PrintDebug("Wrote %d bytes to %s", len(script), path)
	return path, nil
}
