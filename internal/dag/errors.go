package dag

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/hookrun/internal/errors"
)

// DuplicateIDError reports an id declared by more than one task.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%v: %q", errors.ErrDuplicateID, e.ID)
}

// Is matches errors.ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool {
	return target == errors.ErrDuplicateID
}

// UnknownDependencyError reports a dependency id that names no task.
type UnknownDependencyError struct {
	TaskID  string
	Missing string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("%v: %q depends on %q", errors.ErrUnknownDependency, e.TaskID, e.Missing)
}

// Is matches errors.ErrUnknownDependency.
func (e *UnknownDependencyError) Is(target error) bool {
	return target == errors.ErrUnknownDependency
}

// CycleError reports the tasks that could not be placed in any level.
// IDs is sorted.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v among: %s", errors.ErrDependencyCycle, strings.Join(e.IDs, ", "))
}

// Is matches errors.ErrDependencyCycle.
func (e *CycleError) Is(target error) bool {
	return target == errors.ErrDependencyCycle
}
