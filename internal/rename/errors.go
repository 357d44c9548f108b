package rename

import (
	"fmt"
	"strings"
)

// Failure is a planned rename that did not take effect.
type Failure struct {
	Rename
	Err error
	// Kept is the name the node carries after the failed attempt.
	Kept string
}

func (f Failure) Error() string {
	return fmt.Sprintf("failed to rename %q to %q: %v", f.From, f.To, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// ApplyError collects the renames of a plan that failed while the rest of
// the plan was applied.
type ApplyError struct {
	Failed []Failure
}

func (e *ApplyError) Error() string {
	msgs := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		msgs[i] = f.Error()
	}

	return fmt.Sprintf("%d renames failed: %s", len(e.Failed), strings.Join(msgs, "; "))
}

func (e *ApplyError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}

	return errs
}
