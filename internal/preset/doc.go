// Package preset provides the preset table data model and the table loader.
//
// A preset table lists bone naming conventions ("presets") side by side.
// Every preset owns an ordered sequence of slots and slot i of every preset
// names the same logical bone:
//
//	MMD,      センター, 上半身, 首
//	Mixamo,   mixamorig:Hips, mixamorig:Spine, mixamorig:Neck
//	Unity,    Hips, Spine, Neck
//
// An empty slot means the preset has no bone at that position.
//
// # Layouts
//
// Two source layouts are understood:
//
//   - rows: the first cell of every row is the preset name and the remaining
//     cells are its slots (default)
//   - columns: the first row holds preset names and every following row is
//     one slot; the loader transposes it into the row model
//
// # Loading policy
//
//   - Blank rows are skipped and a leading byte-order mark is removed.
//   - A duplicate preset name replaces the earlier row in place and records
//     a duplicate_preset warning.
//   - Rows of differing length are kept unless strict loading is enabled,
//     in which case they are rejected with a ragged_row warning.
//   - An unreadable or unparseable source yields a LoadError and an empty
//     table; consumers treat an empty table as a valid no-op state.
package preset
