package cmdjen

import "fmt"

// IOError reports that a generated file could not be read from or written to
// its destination. Files written before the failure are left in place.
type IOError struct {
	// Op is the operation that failed, e.g. "mkdir", "write" or "stat".
	Op string
	// Path is the destination path involved.
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
