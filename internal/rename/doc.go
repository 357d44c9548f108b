// Package rename applies mapping indexes to a skeleton.
//
// Renaming happens in two steps. A Plan is computed from a snapshot of the
// skeleton's names, then applied; the skeleton is never mutated while its
// names are being enumerated. Plans whose targets collide with their own
// sources (chains such as a→b, b→c or swaps such as L↔R) are routed through
// temporary names.
//
// ApplySet runs one plan per table of a preset.Set in order. It is not
// atomic across tables: when a later table fails, renames made by earlier
// tables are kept and the failure is reported in that table's entry.
package rename
