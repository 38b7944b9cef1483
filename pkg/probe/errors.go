package probe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("probe: invalid configuration")
	ErrTableFull     = errors.New("probe: table is full")
)

// TableFullError is returned when an insertion examines every slot in
// the table without finding an empty one
type TableFullError struct {
	Step int    // 1-based step that could not be placed
	Key  string // formatted key of that step
	Size int    // table size
}

func (e *TableFullError) Error() string {
	return fmt.Sprintf("probe: table is full: step %d (key %q) probed all %d slots",
		e.Step, e.Key, e.Size)
}

// Unwrap lets errors.Is match ErrTableFull
func (e *TableFullError) Unwrap() error {
	return ErrTableFull
}
