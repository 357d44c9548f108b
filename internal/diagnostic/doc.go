// Package diagnostic provides structured warnings and errors reported while
// loading preset tables and applying them to skeletons.
//
// Key capabilities:
//   - Load failures that degrade a table to empty instead of aborting
//   - Rejected or suspicious rows (duplicate presets, ragged rows)
//   - Unknown preset reports with the known presets as suggestions
package diagnostic
