package kaisou

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchEntity indicates a stale or never-created handle, or a link in
	// the hierarchy that points at one.
	ErrNoSuchEntity = errors.New("kaisou: no such entity")

	// ErrNotAttached indicates an entity has no parent in the hierarchy.
	ErrNotAttached = errors.New("kaisou: entity not attached")
)

// HierarchyError records the operation, hierarchy kind and entity behind a
// failure. Err is one of the sentinel errors above.
type HierarchyError struct {
	Op     string
	Kind   string
	Entity Entity
	Err    error
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("%s %s in %s hierarchy: %v", e.Op, e.Entity, e.Kind, e.Err)
}

func (e *HierarchyError) Unwrap() error {
	return e.Err
}
