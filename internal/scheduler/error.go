package scheduler

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrOutputDirMissing indicates the sink's directory does not exist and could not be created
	ErrOutputDirMissing = errors.New("output directory unavailable")
)

// ScriptCreationError represents an error creating a batch script
type ScriptCreationError struct {
	JobName string // Job name
	Path    string // Script path
	Err     error  // Underlying error
}

func (e *ScriptCreationError) Error() string {
	return fmt.Sprintf("failed to create script for job %s at %s: %v",
		e.JobName, e.Path, e.Err)
}

func (e *ScriptCreationError) Unwrap() error {
	return e.Err
}

// NewScriptCreationError creates a new ScriptCreationError
func NewScriptCreationError(jobName string, path string, err error) *ScriptCreationError {
	return &ScriptCreationError{
		JobName: jobName,
		Path:    path,
		Err:     err,
	}
}

// IsScriptCreationError checks if an error is a ScriptCreationError
func IsScriptCreationError(err error) bool {
	var se *ScriptCreationError
	return errors.As(err, &se)
}
