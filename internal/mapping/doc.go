// Package mapping builds the name lookup used to rename bones from one
// preset to another.
//
// An Index is built for exactly one table and one (source, destination)
// preset pair:
//
//	table:  PresetA, hip,  spine, head
//	        PresetB, Hips, Spine, Head
//
//	Build(table, "PresetA", "PresetB") -> {hip: Hips, spine: Spine, head: Head}
//
// # Rules
//
//   - Preset names are matched exactly; a missing preset is an
//     UnknownPresetError.
//   - Only slots present in both presets are considered, so ragged rows
//     are tolerated.
//   - Empty source slots are skipped and empty destination slots are
//     omitted; the index never maps to an empty name.
//   - Several source names may map to the same destination. A source name
//     repeated within one preset keeps its last slot.
package mapping
