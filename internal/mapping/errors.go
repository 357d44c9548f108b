package mapping

import "fmt"

// UnknownPresetError reports a preset name that is not present in a table.
type UnknownPresetError struct {
	Preset string
	Table  string
	// Known lists the presets the table does define.
	Known []string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q in table %q", e.Preset, e.Table)
}
