// Package match detects which preset a skeleton's bone names follow.
//
// Every preset is scored by the number of its non-empty slots whose bone
// name is present in the skeleton (exact set membership, not position).
// Candidates are ranked by that count; ties keep table order, so the
// earlier preset wins. A skeleton matching no preset yields ErrNoMatch.
//
// Key functions:
//   - Detect: scores every preset of a preset.Set and picks the best
//   - DetectTable: the same for a single table
//   - RankCandidates: the full ranked candidate list
package match
