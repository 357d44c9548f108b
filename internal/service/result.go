package service

import (
	"bone-renamer/internal/diagnostic"
	"bone-renamer/internal/match"
	"bone-renamer/internal/rename"
)

// Result is the outcome of one service call.
type Result struct {
	OK      bool
	Message string
	// RunID identifies the call in log output.
	RunID string

	// Report is set by ApplyMapping.
	Report *rename.Report
	// Detection is set by DetectPreset.
	Detection *match.Detection
	// Presets and Tables are set by Presets.
	Presets []string
	Tables  []TableSummary

	Diagnostics diagnostic.Diagnostics
}

// TableSummary lists the presets one table defines.
type TableSummary struct {
	Name    string
	Presets []string
	Loaded  bool
}

// Renamed returns the renames applied by ApplyMapping.
func (r Result) Renamed() rename.Plan {
	if r.Report == nil {
		return nil
	}

	return r.Report.Renamed()
}
