package catalog

import (
	"errors"
	"fmt"
)

// CatalogError represents an error querying the cluster
type CatalogError struct {
	Source    string // Catalog source (e.g., "SLURM", "file")
	Operation string // Operation that failed (e.g., "list partitions")
	Err       error  // Underlying error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s catalog error during %s: %v",
		e.Source, e.Operation, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// ProfileError represents a partition whose limits cannot be used
type ProfileError struct {
	Partition string
	Reason    string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("partition %s: %s", e.Partition, e.Reason)
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(source string, operation string, err error) *CatalogError {
	return &CatalogError{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// IsCatalogError checks if an error is a CatalogError
func IsCatalogError(err error) bool {
	var ce *CatalogError
	return errors.As(err, &ce)
}

// IsProfileError checks if an error is a ProfileError
func IsProfileError(err error) bool {
	var pe *ProfileError
	return errors.As(err, &pe)
}
