package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bone-renamer/internal/config"
	"bone-renamer/internal/mapping"
	"bone-renamer/internal/rename"
	"bone-renamer/internal/skeleton"
)

const (
	bonesCSV   = "PresetA,hip,spine,head\nPresetB,Hips,Spine,Head\n"
	fingersCSV = "PresetB,Left Thumb\nPresetA,thumb_l\n"
)

func newFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func newConfig(tables ...string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tables = nil

	for _, path := range tables {
		cfg.Tables = append(cfg.Tables, config.TableConfig{Path: path})
	}

	data, _ := config.Marshal(cfg)
	parsed, _ := config.Parse(data)

	return parsed
}

func newService(t *testing.T) *Service {
	fs := newFS(t, map[string]string{"bones.csv": bonesCSV, "fingers.csv": fingersCSV})

	return New(fs, newConfig("bones.csv", "fingers.csv"))
}

func TestApplyMapping_Forward(t *testing.T) {
	svc := newService(t)
	sk := skeleton.NewArmature("hip", "spine", "head", "thumb_l")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)
	require.True(t, res.OK, spew.Sdump(res))

	assert.Equal(t, []string{"Hips", "Spine", "Head", "Left Thumb"}, sk.Names())
	assert.Len(t, res.Renamed(), 4)
	assert.Equal(t, "renamed 4 bones from PresetA to PresetB", res.Message)
	assert.NotEmpty(t, res.RunID)
}

func TestApplyMapping_ReverseRestores(t *testing.T) {
	svc := newService(t)
	sk := skeleton.NewArmature("hip", "spine", "head", "tail")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)
	require.True(t, res.OK)

	res = svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Reverse)
	require.True(t, res.OK)

	assert.Equal(t, []string{"hip", "spine", "head", "tail"}, sk.Names())
	assert.Equal(t, rename.Plan{{From: "Hips", To: "hip"}, {From: "Spine", To: "spine"}, {From: "Head", To: "head"}},
		res.Renamed())
}

func TestApplyMapping_UnmappedKept(t *testing.T) {
	svc := newService(t)
	sk := skeleton.NewArmature("hip", "unknown_bone")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)
	require.True(t, res.OK)

	assert.Equal(t, []string{"Hips", "unknown_bone"}, sk.Names())
	assert.Equal(t, rename.Plan{{From: "hip", To: "Hips"}}, res.Renamed())
}

func TestApplyMapping_MissingSource(t *testing.T) {
	svc := New(memfs.New(), newConfig("missing.csv"))
	sk := skeleton.NewArmature("hip", "spine")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)

	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "no preset tables loaded")
	require.NotEmpty(t, res.Diagnostics.Errors)
	assert.Equal(t, "load_failed", res.Diagnostics.Errors[0].Code)
	assert.Equal(t, []string{"hip", "spine"}, sk.Names())
	assert.Empty(t, res.Renamed())
}

func TestApplyMapping_UnknownPreset(t *testing.T) {
	svc := newService(t)
	sk := skeleton.NewArmature("hip")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetZ", mapping.Forward)

	assert.False(t, res.OK)
	require.Len(t, res.Diagnostics.Errors, 1)

	diag := res.Diagnostics.Errors[0]
	assert.Equal(t, "unknown_preset", diag.Code)
	assert.Equal(t, "PresetZ", diag.Subject)
	assert.Equal(t, []string{"PresetA", "PresetB"}, diag.Suggestions)
	assert.Equal(t, []string{"hip"}, sk.Names())
}

func TestApplyMapping_PresetMissingFromOneTable(t *testing.T) {
	fs := newFS(t, map[string]string{
		"bones.csv":   bonesCSV + "PresetC,pelvis,chest,skull\n",
		"fingers.csv": fingersCSV,
	})
	svc := New(fs, newConfig("bones.csv", "fingers.csv"))
	sk := skeleton.NewArmature("hip", "thumb_l")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetC", mapping.Forward)

	assert.True(t, res.OK, "a table without the preset is skipped with a warning")
	assert.Equal(t, []string{"pelvis", "thumb_l"}, sk.Names())
	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, "unknown_preset", res.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "fingers", res.Diagnostics.Warnings[0].Table)
	assert.Equal(t, []string{"PresetB", "PresetA"}, res.Diagnostics.Warnings[0].Suggestions)
}

func TestApplyMapping_Preconditions(t *testing.T) {
	svc := newService(t)

	posed := skeleton.NewArmature("hip")
	posed.SetMode(skeleton.ModePose)

	doc, err := skeleton.ParseDocument([]byte(`{"meshes":[{"name":"Body"}]}`), skeleton.DocumentOptions{})
	require.NoError(t, err)

	tests := []struct {
		name     string
		target   skeleton.Skeleton
		wantCode string
	}{
		{name: "pose mode", target: posed, wantCode: "not_editable"},
		{name: "not an armature", target: doc, wantCode: "not_an_armature"},
		{name: "nil", target: nil, wantCode: "not_an_armature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.ApplyMapping(context.Background(), tt.target, "PresetA", "PresetB", mapping.Forward)

			assert.False(t, res.OK)
			require.NotEmpty(t, res.Diagnostics.Errors)
			assert.Equal(t, tt.wantCode, res.Diagnostics.Errors[0].Code)
		})
	}

	assert.Equal(t, []string{"hip"}, posed.Names())
}

func TestApplyMapping_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sk := skeleton.NewArmature("hip")
	res := newService(t).ApplyMapping(ctx, sk, "PresetA", "PresetB", mapping.Forward)

	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "cancelled")
	assert.Equal(t, []string{"hip"}, sk.Names())
}

type panickySkeleton struct{ *skeleton.Armature }

func (panickySkeleton) Names() []string { panic("boom") }

func TestApplyMapping_RecoversPanics(t *testing.T) {
	sk := panickySkeleton{skeleton.NewArmature("hip")}

	var res Result

	assert.NotPanics(t, func() {
		res = newService(t).ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)
	})
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "boom")
	assert.Equal(t, "internal_error", res.Diagnostics.Errors[len(res.Diagnostics.Errors)-1].Code)
}

func TestDetectPreset(t *testing.T) {
	tests := []struct {
		name      string
		bones     []string
		wantOK    bool
		wantName  string
		wantCount int
	}{
		{name: "scenario", bones: []string{"hip", "spine"}, wantOK: true, wantName: "PresetA", wantCount: 2},
		{name: "fingers count too", bones: []string{"Hips", "Left Thumb"}, wantOK: true, wantName: "PresetB", wantCount: 2},
		{name: "no match", bones: []string{"root"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sk := skeleton.NewArmature(tt.bones...)
			res := newService(t).DetectPreset(context.Background(), sk)

			assert.Equal(t, tt.wantOK, res.OK, res.Message)
			require.NotNil(t, res.Detection)
			assert.Equal(t, tt.wantName, res.Detection.Preset)
			assert.Equal(t, tt.wantCount, res.Detection.Count)
			assert.Equal(t, tt.bones, sk.Names())
		})
	}
}

func TestDetectPreset_Tie(t *testing.T) {
	fs := newFS(t, map[string]string{"bones.csv": "First,a,b,x\nSecond,a,b,y\n"})
	svc := New(fs, newConfig("bones.csv"))

	res := svc.DetectPreset(context.Background(), skeleton.NewArmature("a", "b"))

	require.True(t, res.OK)
	assert.Equal(t, "First", res.Detection.Preset)
	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, "ambiguous_preset", res.Diagnostics.Warnings[0].Code)
}

func TestDetectPreset_NotAnArmature(t *testing.T) {
	doc, err := skeleton.ParseDocument([]byte(`{"meshes":[]}`), skeleton.DocumentOptions{})
	require.NoError(t, err)

	res := newService(t).DetectPreset(context.Background(), doc)
	assert.False(t, res.OK)
	assert.Nil(t, res.Detection)
}

func TestPresets(t *testing.T) {
	res := newService(t).Presets(context.Background())

	require.True(t, res.OK)
	assert.Equal(t, []string{"PresetA", "PresetB"}, res.Presets)
	require.Len(t, res.Tables, 2)
	assert.Equal(t, TableSummary{Name: "bones", Presets: []string{"PresetA", "PresetB"}, Loaded: true}, res.Tables[0])
	assert.Equal(t, TableSummary{Name: "fingers", Presets: []string{"PresetB", "PresetA"}, Loaded: true}, res.Tables[1])
}

func TestCheck(t *testing.T) {
	fs := newFS(t, map[string]string{
		"bones.csv": "PresetA,hip,spine\nPresetA,hip,spine,head\nPresetB,Hips,Hips\n",
	})
	svc := New(fs, newConfig("bones.csv", "missing.csv"))

	res := svc.Check(context.Background())

	assert.False(t, res.OK)
	codes := map[string]bool{}
	for _, d := range res.Diagnostics.All() {
		codes[d.Code] = true
	}

	assert.True(t, codes["duplicate_preset"])
	assert.True(t, codes["duplicate_bone"])
	assert.True(t, codes["ragged_row"])
	assert.True(t, codes["load_failed"])
	assert.True(t, codes["empty_table"])
}

func TestService_LogsRunID(t *testing.T) {
	var buf bytes.Buffer

	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Info})
	fs := newFS(t, map[string]string{"bones.csv": bonesCSV})
	svc := New(fs, newConfig("bones.csv"), WithLogger(logger))

	res := svc.DetectPreset(context.Background(), skeleton.NewArmature("hip"))
	require.True(t, res.OK)

	assert.Contains(t, buf.String(), "run="+res.RunID)
	assert.Contains(t, buf.String(), "preset=PresetA")
}

func TestApplyMapping_ExistingTargetDoesNotStopTable(t *testing.T) {
	svc := newService(t)
	sk := skeleton.NewArmature("hip", "Hips", "spine", "head")

	res := svc.ApplyMapping(context.Background(), sk, "PresetA", "PresetB", mapping.Forward)

	assert.True(t, res.OK, res.Message)
	assert.Equal(t, []string{"hip", "Hips", "Spine", "Head"}, sk.Names())
	assert.Equal(t, rename.Plan{{From: "spine", To: "Spine"}, {From: "head", To: "Head"}}, res.Renamed())

	require.Len(t, res.Diagnostics.Warnings, 1)
	diag := res.Diagnostics.Warnings[0]
	assert.Equal(t, "rename_failed", diag.Code)
	assert.Equal(t, "bones", diag.Table)
	assert.Equal(t, "hip", diag.Subject)
}
