package mapping

import (
	"sort"

	"bone-renamer/internal/preset"
)

// Index is a one-directional bone name lookup for one table.
type Index struct {
	Table       string
	Source      string
	Destination string

	names map[string]string
}

// Build creates the index renaming bones named after source into the
// names used by destination.
func Build(table *preset.Table, source, destination string) (*Index, error) {
	from, ok := table.Lookup(source)
	if !ok {
		return nil, &UnknownPresetError{Preset: source, Table: table.Name(), Known: table.Names()}
	}

	to, ok := table.Lookup(destination)
	if !ok {
		return nil, &UnknownPresetError{Preset: destination, Table: table.Name(), Known: table.Names()}
	}

	shared := min(from.SlotCount(), to.SlotCount())
	names := make(map[string]string, shared)

	for i := range shared {
		fromName, ok := from.Slot(i)
		if !ok {
			continue
		}

		toName, ok := to.Slot(i)
		if !ok {
			continue
		}

		names[fromName] = toName
	}

	return &Index{
		Table:       table.Name(),
		Source:      source,
		Destination: destination,
		names:       names,
	}, nil
}

// BuildDirected builds the index for the pair oriented by dir.
func BuildDirected(table *preset.Table, source, destination string, dir Direction) (*Index, error) {
	from, to := dir.Orient(source, destination)
	return Build(table, from, to)
}

// Lookup returns the destination name for a source bone name.
func (x *Index) Lookup(name string) (string, bool) {
	to, ok := x.names[name]
	return to, ok
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.names)
}

// Sources returns the source names in sorted order.
func (x *Index) Sources() []string {
	keys := make([]string, 0, len(x.names))
	for k := range x.names {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
