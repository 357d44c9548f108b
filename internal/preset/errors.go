package preset

import "fmt"

// LoadError reports a tabular source that could not be read or parsed.
// The loader still returns an empty table alongside it.
type LoadError struct {
	Table string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load table %q from %s: %v", e.Table, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
