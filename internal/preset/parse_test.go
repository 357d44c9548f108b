package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Rows(t *testing.T) {
	data := "PresetA,hip,spine,head\nPresetB, Hips, Spine, Head\n"

	table, diags, err := Parse("bones", []byte(data), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())

	assert.Equal(t, []string{"PresetA", "PresetB"}, table.Names())

	b, ok := table.Lookup("PresetB")
	require.True(t, ok)
	assert.Equal(t, []string{"Hips", "Spine", "Head"}, b.Slots)
}

func TestParse_SkipsBlankRows(t *testing.T) {
	data := "\nPresetA,hip\n,,,\n\n  ,  \nPresetB,Hips\n"

	table, diags, err := Parse("bones", []byte(data), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, []string{"PresetA", "PresetB"}, table.Names())
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	data := "\ufeffPresetA,hip\nPresetB,Hips\n"

	table, _, err := Parse("bones", []byte(data), ParseOptions{})
	require.NoError(t, err)

	_, ok := table.Lookup("PresetA")
	assert.True(t, ok, "BOM must not be part of the first preset name")
}

func TestParse_UTF16WithByteOrderMark(t *testing.T) {
	// "A,x\n" encoded as UTF-16LE with BOM.
	data := []byte{0xFF, 0xFE, 'A', 0, ',', 0, 'x', 0, '\n', 0}

	table, _, err := Parse("bones", data, ParseOptions{})
	require.NoError(t, err)

	p, ok := table.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, p.Slots)
}

func TestParse_EmptySlotsKept(t *testing.T) {
	table, _, err := Parse("bones", []byte("A,hip,,head\nB,Hips,Spine,\n"), ParseOptions{})
	require.NoError(t, err)

	a, _ := table.Lookup("A")
	b, _ := table.Lookup("B")
	assert.Equal(t, []string{"hip", "", "head"}, a.Slots)
	assert.Equal(t, []string{"Hips", "Spine", ""}, b.Slots)
}

func TestParse_EmptyPresetNameRejected(t *testing.T) {
	table, diags, err := Parse("bones", []byte("A,hip\n,orphan\nB,Hips\n"), ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, table.Names())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "empty_preset_name", diags.Warnings[0].Code)
	assert.Equal(t, "row 2", diags.Warnings[0].Subject)
}

func TestParse_RaggedRows(t *testing.T) {
	data := "A,hip,spine,head\nB,Hips\nC,h,s,hd\n"

	t.Run("lenient keeps ragged rows", func(t *testing.T) {
		table, diags, err := Parse("bones", []byte(data), ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, table.Names())
		assert.Empty(t, diags.Warnings)
	})

	t.Run("strict rejects ragged rows", func(t *testing.T) {
		table, diags, err := Parse("bones", []byte(data), ParseOptions{Strict: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, table.Names())
		require.Len(t, diags.Warnings, 1)
		assert.Equal(t, "ragged_row", diags.Warnings[0].Code)
		assert.Equal(t, "row 2", diags.Warnings[0].Subject)
	})
}

func TestParse_DuplicatePreset(t *testing.T) {
	table, diags, err := Parse("bones", []byte("A,hip\nB,Hips\nA,pelvis\n"), ParseOptions{})
	require.NoError(t, err)

	a, _ := table.Lookup("A")
	assert.Equal(t, []string{"pelvis"}, a.Slots)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "duplicate_preset", diags.Warnings[0].Code)
}

func TestParse_Columns(t *testing.T) {
	data := "bone,PresetA,PresetB\npelvis,hip,Hips\ntorso,spine,Spine\nskull,head\n"

	table, diags, err := Parse("bones", []byte(data), ParseOptions{Layout: LayoutColumns})
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())

	assert.Equal(t, []string{"PresetA", "PresetB"}, table.Names(), "the label column is not a preset")

	a, _ := table.Lookup("PresetA")
	b, _ := table.Lookup("PresetB")
	assert.Equal(t, []string{"hip", "spine", "head"}, a.Slots)
	assert.Equal(t, []string{"Hips", "Spine", ""}, b.Slots)
}

func TestParse_ColumnsEmptyHeader(t *testing.T) {
	table, diags, err := Parse("bones", []byte("label,A,,B\n0,x,y,z\n"), ParseOptions{Layout: LayoutColumns})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, table.Names())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "column 3", diags.Warnings[0].Subject)
}

func TestParse_ColumnsLabelOnly(t *testing.T) {
	table, _, err := Parse("bones", []byte("label\nhip\n"), ParseOptions{Layout: LayoutColumns})
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestParse_KeepsTrailingSpaces(t *testing.T) {
	table, _, err := Parse("bones", []byte("PresetA,  hip ,\tspine\t\n"), ParseOptions{})
	require.NoError(t, err)

	p, ok := table.Lookup("PresetA")
	require.True(t, ok)
	assert.Equal(t, []string{"hip ", "spine\t"}, p.Slots)
}

func TestParse_EmptyInput(t *testing.T) {
	table, diags, err := Parse("bones", nil, ParseOptions{})
	require.NoError(t, err)
	assert.True(t, table.Empty())
	assert.Equal(t, 0, diags.Len())
}

func TestParse_QuotedCells(t *testing.T) {
	table, _, err := Parse("bones", []byte("\"Preset, quoted\",\"a,b\",c\n"), ParseOptions{})
	require.NoError(t, err)

	p, ok := table.Lookup("Preset, quoted")
	require.True(t, ok)
	assert.Equal(t, []string{"a,b", "c"}, p.Slots)
}
