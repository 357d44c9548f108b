package preset

import (
	"fmt"

	"bone-renamer/internal/common"
	"bone-renamer/internal/diagnostic"
)

// Preset is one naming convention: a name and its ordered bone slots.
type Preset struct {
	Name  string
	Slots []string
}

// SlotCount returns the number of slots, empty ones included.
func (p Preset) SlotCount() int {
	return len(p.Slots)
}

// Slot returns the bone name at slot i. It reports false when i is out of
// range or the slot is empty.
func (p Preset) Slot(i int) (string, bool) {
	if i < 0 || i >= len(p.Slots) || p.Slots[i] == "" {
		return "", false
	}

	return p.Slots[i], true
}

// BoneNames returns the non-empty slot names in slot order.
func (p Preset) BoneNames() []string {
	names := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		if s != "" {
			names = append(names, s)
		}
	}

	return names
}

// Table is an immutable, ordered collection of presets sharing one slot layout.
type Table struct {
	name    string
	presets []Preset
	index   map[string]int
}

// NewTable builds a table from presets in order. A repeated preset name
// replaces the earlier entry at the earlier position and is reported as a
// duplicate_preset warning.
func NewTable(name string, presets []Preset) (*Table, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	t := &Table{
		name:    name,
		presets: make([]Preset, 0, len(presets)),
		index:   make(map[string]int, len(presets)),
	}

	for _, p := range presets {
		p.Slots = append([]string(nil), p.Slots...)

		if i, ok := t.index[p.Name]; ok {
			diags.AddWarning("duplicate_preset",
				fmt.Sprintf("preset %q defined more than once, last definition wins", p.Name), name, p.Name)
			t.presets[i] = p

			continue
		}

		t.index[p.Name] = len(t.presets)
		t.presets = append(t.presets, p)
	}

	return t, diags
}

// EmptyTable returns a table with no presets.
func EmptyTable(name string) *Table {
	return &Table{name: name, index: map[string]int{}}
}

// Name returns the table name (e.g. "bones" or "fingers").
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of presets.
func (t *Table) Len() int {
	return len(t.presets)
}

// Empty reports whether the table has no presets.
func (t *Table) Empty() bool {
	return len(t.presets) == 0
}

// Presets returns a copy of the presets in table order.
func (t *Table) Presets() []Preset {
	out := make([]Preset, len(t.presets))
	copy(out, t.presets)

	return out
}

// Names returns the preset names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.presets))
	for i, p := range t.presets {
		names[i] = p.Name
	}

	return names
}

// Lookup returns the preset with the given name using exact string match.
func (t *Table) Lookup(name string) (Preset, bool) {
	i, ok := t.index[name]
	if !ok {
		return Preset{}, false
	}

	return t.presets[i], true
}

// Position returns the table-order position of the named preset, or -1.
func (t *Table) Position(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}

	return -1
}

// Set is an ordered list of independent tables applied in sequence,
// e.g. general bones followed by finger bones.
type Set []*Table

// PresetNames returns the union of preset names across tables in
// first-seen order.
func (s Set) PresetNames() []string {
	var all []string
	for _, t := range s {
		all = append(all, t.Names()...)
	}

	return common.UniqueOrdered(all)
}

// Table returns the table with the given name.
func (s Set) Table(name string) (*Table, bool) {
	for _, t := range s {
		if t.Name() == name {
			return t, true
		}
	}

	return nil, false
}

// Empty reports whether every table in the set is empty.
func (s Set) Empty() bool {
	for _, t := range s {
		if !t.Empty() {
			return false
		}
	}

	return true
}
