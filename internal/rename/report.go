package rename

import (
	"errors"
	"fmt"

	"bone-renamer/internal/mapping"
	"bone-renamer/internal/preset"
	"bone-renamer/internal/skeleton"
)

// TableReport is the outcome of applying one table.
type TableReport struct {
	Table string
	// Renamed lists the renames that took effect, even when Err is set.
	Renamed Plan
	// Failed lists the renames of this table that did not take effect.
	Failed []Failure
	// Skipped is set when the table is empty, e.g. because it failed to load.
	Skipped bool
	Err     error
}

// Report is the outcome of applying a preset.Set, one entry per table.
type Report struct {
	Source      string
	Destination string
	Tables      []TableReport
}

// Renamed returns every rename that took effect across tables.
func (r Report) Renamed() Plan {
	var all Plan
	for _, t := range r.Tables {
		all = append(all, t.Renamed...)
	}

	return all
}

// Failed returns every rename that did not take effect across tables.
func (r Report) Failed() []Failure {
	var all []Failure
	for _, t := range r.Tables {
		all = append(all, t.Failed...)
	}

	return all
}

// Err joins the per-table errors, or returns nil when every table applied.
func (r Report) Err() error {
	var errs []error
	for _, t := range r.Tables {
		if t.Err != nil {
			errs = append(errs, fmt.Errorf("table %q: %w", t.Table, t.Err))
		}
	}

	return errors.Join(errs...)
}

// Partial reports whether some tables renamed bones while others failed.
func (r Report) Partial() bool {
	return r.Err() != nil && len(r.Renamed()) > 0
}

// ApplySet renames the skeleton table by table, oriented by dir. The
// returned error is only set when the skeleton fails its preconditions, in
// which case nothing was renamed. Table failures are recorded in the report
// and do not undo earlier tables.
func ApplySet(
	s skeleton.Skeleton,
	set preset.Set,
	source, destination string,
	dir mapping.Direction,
) (Report, error) {
	from, to := dir.Orient(source, destination)
	report := Report{Source: from, Destination: to}

	if err := skeleton.Check(s); err != nil {
		return report, err
	}

	for _, table := range set {
		tr := TableReport{Table: table.Name()}

		if table.Empty() {
			tr.Skipped = true
			report.Tables = append(report.Tables, tr)

			continue
		}

		idx, err := mapping.Build(table, from, to)
		if err != nil {
			tr.Err = err
			report.Tables = append(report.Tables, tr)

			continue
		}

		tr.Renamed, tr.Err = BuildPlan(idx, s.Names()).Apply(s)

		var applyErr *ApplyError
		if errors.As(tr.Err, &applyErr) {
			tr.Failed = applyErr.Failed
		}

		report.Tables = append(report.Tables, tr)
	}

	return report, nil
}
