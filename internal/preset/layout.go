package preset

import (
	"fmt"
	"strings"

	"bone-renamer/internal/common"
)

// Layout describes how a tabular source arranges presets.
type Layout int

const (
	// LayoutRows puts one preset per row, preset name in the first cell.
	LayoutRows Layout = iota
	// LayoutColumns puts one preset per column, preset names in the first row.
	LayoutColumns
)

// String returns the configuration spelling of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutRows:
		return "rows"
	case LayoutColumns:
		return "columns"
	default:
		return common.UnknownStr
	}
}

// ParseLayout parses "rows" or "columns". The empty string means rows.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rows", "row":
		return LayoutRows, nil
	case "columns", "column", "cols":
		return LayoutColumns, nil
	default:
		return LayoutRows, fmt.Errorf("unknown table layout %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}
