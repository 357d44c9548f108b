package preset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"bone-renamer/internal/diagnostic"
)

const byteOrderMark = "\ufeff"

// ParseOptions controls how raw tabular data becomes a table.
type ParseOptions struct {
	Layout Layout
	// Strict rejects rows whose slot count differs from the first preset row.
	Strict bool
}

// leadingSpace is what a cell loses at its start, like csv skipinitialspace.
const leadingSpace = " \t"

// Parse parses comma-delimited data into a table named name.
// The returned error is non-nil only when the data cannot be decoded or
// parsed at all; row-level problems are reported as diagnostics.
func Parse(name string, data []byte, opts ParseOptions) (*Table, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	records, err := readRecords(data)
	if err != nil {
		return EmptyTable(name), diags, err
	}

	var rows []row

	switch opts.Layout {
	case LayoutRows:
		rows = records
	case LayoutColumns:
		rows = transpose(records)
	default:
		return EmptyTable(name), diags, fmt.Errorf("unsupported layout %v", opts.Layout)
	}

	presets := make([]Preset, 0, len(rows))
	expected := -1

	for _, r := range rows {
		presetName := strings.TrimLeft(r.cells[0], leadingSpace)
		slots := trimCells(r.cells[1:])

		if presetName == "" {
			diags.AddWarning("empty_preset_name",
				fmt.Sprintf("%s has no preset name and was skipped", r.label()), name, r.label())

			continue
		}

		if expected < 0 {
			expected = len(slots)
		}

		if opts.Strict && len(slots) != expected {
			diags.AddWarning("ragged_row",
				fmt.Sprintf("preset %q has %d slots, expected %d; row rejected", presetName, len(slots), expected),
				name, r.label())

			continue
		}

		presets = append(presets, Preset{Name: presetName, Slots: slots})
	}

	table, tableDiags := NewTable(name, presets)
	diags.Merge(tableDiags)

	return table, diags, nil
}

// row is one preset line together with its position in the source.
type row struct {
	cells []string
	line  int
	// column is set for rows produced from the columns layout.
	column bool
}

func (r row) label() string {
	if r.column {
		return fmt.Sprintf("column %d", r.line)
	}

	return fmt.Sprintf("row %d", r.line)
}

// readRecords decodes data and returns its non-blank CSV records.
func readRecords(data []byte) ([]row, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows []row

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("failed to parse table: %w", err)
		}

		if len(rows) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], byteOrderMark)
		}

		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, row{cells: record, line: line})
	}

	return rows, nil
}

// transpose turns a columns-layout record list into one row per column.
// Column 0 holds slot labels and is not a preset. Cells missing from short
// records are treated as empty slots.
func transpose(records []row) []row {
	if len(records) == 0 {
		return nil
	}

	width := 0
	for _, r := range records {
		if len(r.cells) > width {
			width = len(r.cells)
		}
	}

	if width <= 1 {
		return nil
	}

	out := make([]row, 0, width-1)

	for col := 1; col < width; col++ {
		cells := make([]string, len(records))
		for i, r := range records {
			if col < len(r.cells) {
				cells[i] = r.cells[col]
			}
		}

		out = append(out, row{cells: cells, line: col + 1, column: true})
	}

	return out
}

// trimCells strips leading blanks only; trailing characters are part of the
// bone name.
func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimLeft(c, leadingSpace)
	}

	return out
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
