package preset

import (
	"fmt"

	"bone-renamer/internal/diagnostic"
)

// Validate inspects a loaded table for problems that loading tolerates but
// that change how it maps: ragged presets, repeated bone names within one
// preset, and presets without any bones.
func Validate(t *Table) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		res.AddError("table_is_nil", "table is nil", "", "")
		return res
	}

	if t.Empty() {
		res.AddWarning("empty_table", "table has no presets", t.Name(), "")
		return res
	}

	width := 0
	for _, p := range t.presets {
		if p.SlotCount() > width {
			width = p.SlotCount()
		}
	}

	for _, p := range t.presets {
		if p.SlotCount() != width {
			res.AddWarning("ragged_row",
				fmt.Sprintf("preset has %d slots, widest preset has %d", p.SlotCount(), width), t.Name(), p.Name)
		}

		seen := map[string]int{}
		bones := 0

		for i, name := range p.Slots {
			if name == "" {
				continue
			}

			bones++

			if first, ok := seen[name]; ok {
				res.AddWarning("duplicate_bone",
					fmt.Sprintf("bone %q appears in slots %d and %d, the later slot wins", name, first, i), t.Name(), p.Name)

				continue
			}

			seen[name] = i
		}

		if bones == 0 {
			res.AddInfo("empty_preset", "preset has no bone names", t.Name(), p.Name)
		}
	}

	return res
}
