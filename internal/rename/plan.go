package rename

import (
	"fmt"

	"bone-renamer/internal/mapping"
	"bone-renamer/internal/skeleton"
)

const (
	tempNamePrefix = "__bone_renamer_tmp_"
	maxSuffix      = 999
)

// Rename is one planned or applied name change.
type Rename struct {
	From string
	To   string
}

// Plan is an ordered list of renames.
type Plan []Rename

// BuildPlan lists the renames idx implies for the given snapshot of names,
// in snapshot order. Names absent from idx, mapped to the empty string or
// mapped to themselves produce no entry.
func BuildPlan(idx *mapping.Index, names []string) Plan {
	var plan Plan

	for _, name := range names {
		to, ok := idx.Lookup(name)
		if !ok || to == "" || to == name {
			continue
		}

		plan = append(plan, Rename{From: name, To: to})
	}

	return plan
}

// Apply executes the plan against s and returns the renames that took
// effect, in the order they were made. A rename that fails is recorded and
// the rest of the plan still runs; the failures come back as an
// *ApplyError. A node parked under a temporary name whose rename fails gets
// its old name back, or a numbered variant of it when that name was taken
// in the meantime.
func (p Plan) Apply(s skeleton.Skeleton) (Plan, error) {
	if len(p) == 0 {
		return nil, nil
	}

	current := skeleton.NameSet(s)
	sources := make(map[string]struct{}, len(p))
	skip := make(map[int]bool)

	var failed []Failure

	for i, r := range p {
		if r.To == "" {
			failed = append(failed, Failure{Rename: r, Err: skeleton.ErrEmptyName, Kept: r.From})
			skip[i] = true

			continue
		}

		sources[r.From] = struct{}{}
	}

	// Entries whose target is still held by another source move aside first.
	temps := make(map[int]string)
	serial := 0

	for i, r := range p {
		if skip[i] {
			continue
		}

		if _, blocked := sources[r.To]; !blocked {
			continue
		}

		temp := nextTempName(current, &serial)
		if err := s.Rename(r.From, temp); err != nil {
			failed = append(failed, Failure{Rename: r, Err: err, Kept: r.From})
			skip[i] = true

			continue
		}

		current[temp] = struct{}{}
		temps[i] = temp
	}

	applied := make(Plan, 0, len(p))

	// Direct renames first: they free the source names the parked entries
	// are waiting for.
	for _, parked := range []bool{false, true} {
		for i, r := range p {
			if skip[i] {
				continue
			}

			temp, isTemp := temps[i]
			if isTemp != parked {
				continue
			}

			from := r.From
			if isTemp {
				from = temp
			}

			if err := s.Rename(from, r.To); err != nil {
				f := Failure{Rename: r, Err: err, Kept: r.From}
				if isTemp {
					f.Kept = unpark(s, temp, r.From)
				}

				failed = append(failed, f)

				continue
			}

			applied = append(applied, r)
		}
	}

	if len(failed) > 0 {
		return applied, &ApplyError{Failed: failed}
	}

	return applied, nil
}

// Apply checks the skeleton preconditions, snapshots its names and applies
// the plan built from idx.
func Apply(s skeleton.Skeleton, idx *mapping.Index) (Plan, error) {
	if err := skeleton.Check(s); err != nil {
		return nil, err
	}

	return BuildPlan(idx, s.Names()).Apply(s)
}

// nextTempName returns a temporary name not present in names.
func nextTempName(names map[string]struct{}, serial *int) string {
	for {
		*serial++

		name := fmt.Sprintf("%s%d", tempNamePrefix, *serial)
		if _, exists := names[name]; !exists {
			return name
		}
	}
}

// unpark moves a parked node back to name, or to the first free
// "name.NNN" when name is taken. It returns the name the node ends up with.
func unpark(s skeleton.Skeleton, temp, name string) string {
	if err := s.Rename(temp, name); err == nil {
		return name
	}

	taken := skeleton.NameSet(s)

	for n := 1; n <= maxSuffix; n++ {
		candidate := fmt.Sprintf("%s.%03d", name, n)
		if _, exists := taken[candidate]; exists {
			continue
		}

		if err := s.Rename(temp, candidate); err == nil {
			return candidate
		}
	}

	return temp
}
