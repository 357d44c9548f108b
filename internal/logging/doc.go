// Package logging builds the hclog loggers used across bone-renamer.
//
// Level and output format follow the environment: BONE_RENAMER_LOG_LEVEL
// selects the level and BONE_RENAMER_JSON_LOG=1 switches to JSON lines.
// Text output is line-prefixed so it stands out next to host output.
package logging
