package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"bone-renamer/internal/common"
	"bone-renamer/internal/config"
	"bone-renamer/internal/diagnostic"
	"bone-renamer/internal/mapping"
	"bone-renamer/internal/match"
	"bone-renamer/internal/preset"
	"bone-renamer/internal/rename"
	"bone-renamer/internal/skeleton"
)

// Service runs the preset operations against the configured tables.
type Service struct {
	cfg    *config.Config
	loader *preset.Loader
	logger hclog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger hclog.Logger
	cache  preset.Cache
}

// WithLogger sets the logger; the default discards output.
func WithLogger(logger hclog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithCache serves parsed tables from c when their sources are unchanged.
func WithCache(c preset.Cache) Option {
	return func(o *serviceOptions) {
		o.cache = c
	}
}

// New creates a Service reading tables from fs. A nil cfg means
// config.DefaultConfig.
func New(fs billy.Filesystem, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := serviceOptions{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	loaderOpts := []preset.LoaderOption{preset.WithStrict(cfg.Strict)}
	if o.cache != nil {
		loaderOpts = append(loaderOpts, preset.WithCache(o.cache))
	}

	return &Service{
		cfg:    cfg,
		loader: preset.NewLoader(fs, loaderOpts...),
		logger: o.logger,
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// LoadTables loads every configured table in order.
func (s *Service) LoadTables() (preset.Set, diagnostic.Diagnostics) {
	return s.loader.LoadAll(s.cfg.Sources())
}

// ApplyMapping renames the skeleton's bones from the source preset to the
// destination preset, or the other way round for mapping.Reverse. Tables
// are applied in order and a table that fails does not undo earlier ones.
func (s *Service) ApplyMapping(
	ctx context.Context,
	sk skeleton.Skeleton,
	source, destination string,
	dir mapping.Direction,
) (res Result) {
	res, log := s.begin("apply")
	defer s.recoverInto(&res, log)

	if err := ctx.Err(); err != nil {
		return fail(res, "cancelled", err)
	}

	if err := skeleton.Check(sk); err != nil {
		res.Diagnostics.AddError(preconditionCode(err), err.Error(), "", "")
		return fail(res, "", err)
	}

	set, diags := s.LoadTables()
	res.Diagnostics.Merge(diags)

	if set.Empty() {
		return fail(res, "", errors.New("no preset tables loaded"))
	}

	from, to := dir.Orient(source, destination)
	log.Info("applying mapping", "from", from, "to", to, "direction", dir.String())

	if missing := unknownEverywhere(set, from, to); len(missing) > 0 {
		for _, name := range missing {
			d := diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        "unknown_preset",
				Message:     fmt.Sprintf("preset %q is not defined in any table", name),
				Subject:     name,
				Suggestions: set.PresetNames(),
			}
			res.Diagnostics.Add(d)
		}

		return fail(res, "", fmt.Errorf("unknown preset %s", quoteAll(missing)))
	}

	report, err := rename.ApplySet(sk, set, source, destination, dir)
	if err != nil {
		res.Diagnostics.AddError(preconditionCode(err), err.Error(), "", "")
		return fail(res, "", err)
	}

	res.Report = &report
	s.recordTableErrors(&res, set, report)

	renamed := report.Renamed()
	for _, r := range renamed {
		log.Debug("renamed bone", "from", r.From, "to", r.To)
	}

	log.Info("mapping applied", "renamed", len(renamed), "tables", len(report.Tables))

	res.OK = !res.Diagnostics.HasErrors()
	res.Message = fmt.Sprintf("renamed %d bones from %s to %s", len(renamed), from, to)

	if !res.OK {
		res.Message += "; " + firstError(res.Diagnostics)
	}

	return res
}

// DetectPreset reports the preset whose names best match the skeleton.
// The skeleton is never modified.
func (s *Service) DetectPreset(ctx context.Context, sk skeleton.Skeleton) (res Result) {
	res, log := s.begin("detect")
	defer s.recoverInto(&res, log)

	if err := ctx.Err(); err != nil {
		return fail(res, "cancelled", err)
	}

	if sk == nil || sk.Kind() != skeleton.KindArmature {
		kind := skeleton.KindUnknown
		if sk != nil {
			kind = sk.Kind()
		}

		err := &skeleton.NotAnArmatureError{Kind: kind}
		res.Diagnostics.AddError("not_an_armature", err.Error(), "", "")

		return fail(res, "", err)
	}

	set, diags := s.LoadTables()
	res.Diagnostics.Merge(diags)

	d := match.Detect(set, sk.Names())
	res.Detection = &d

	if !d.Matched() {
		log.Info("no preset detected", "bones", len(sk.Names()))
		res.Message = d.Err().Error()

		return res
	}

	best := d.Candidates.Best()
	log.Info("preset detected", "preset", d.Preset, "matched", d.Count,
		"coverage", fmt.Sprintf("%.2f", best.Coverage()), "tie", d.Candidates.IsTie())

	for table := range best.Matched {
		log.Debug("matched slots", "table", table, "slots", best.MatchedSlots(table))
	}

	res.OK = true
	res.Message = fmt.Sprintf("detected preset %s (%d of %d bones matched)", d.Preset, d.Count, best.Total)

	if d.Candidates.IsTie() {
		res.Diagnostics.AddWarning("ambiguous_preset",
			fmt.Sprintf("preset %s ties with %s, the earlier preset was chosen", d.Preset, d.Candidates[1].Preset), "", d.Preset)
	}

	return res
}

// Presets lists every preset name across the configured tables, in order
// of first appearance.
func (s *Service) Presets(ctx context.Context) (res Result) {
	res, log := s.begin("presets")
	defer s.recoverInto(&res, log)

	if err := ctx.Err(); err != nil {
		return fail(res, "cancelled", err)
	}

	set, diags := s.LoadTables()
	res.Diagnostics.Merge(diags)

	res.Presets = set.PresetNames()
	for _, t := range set {
		res.Tables = append(res.Tables, TableSummary{Name: t.Name(), Presets: t.Names(), Loaded: !t.Empty()})
	}

	res.OK = !res.Diagnostics.HasErrors()
	res.Message = fmt.Sprintf("%d presets in %d tables", len(res.Presets), len(set))

	return res
}

// Check loads every table and validates it.
func (s *Service) Check(ctx context.Context) (res Result) {
	res, log := s.begin("check")
	defer s.recoverInto(&res, log)

	if err := ctx.Err(); err != nil {
		return fail(res, "cancelled", err)
	}

	set, diags := s.LoadTables()
	res.Diagnostics.Merge(diags)

	for _, t := range set {
		res.Diagnostics.Merge(*preset.Validate(t))
		res.Tables = append(res.Tables, TableSummary{Name: t.Name(), Presets: t.Names(), Loaded: !t.Empty()})
	}

	res.Presets = set.PresetNames()
	res.OK = !res.Diagnostics.HasErrors()
	res.Message = fmt.Sprintf("%d tables checked: %d errors, %d warnings",
		len(set), len(res.Diagnostics.Errors), len(res.Diagnostics.Warnings))

	log.Info("tables checked", "errors", len(res.Diagnostics.Errors), "warnings", len(res.Diagnostics.Warnings))

	return res
}

func (s *Service) begin(op string) (Result, hclog.Logger) {
	runID := uuid.NewString()

	return Result{RunID: runID}, s.logger.With("run", runID, "op", op)
}

func (s *Service) recoverInto(res *Result, log hclog.Logger) {
	r := recover()
	if r == nil {
		return
	}

	log.Error("unexpected failure", "panic", r)

	res.OK = false
	res.Message = fmt.Sprintf("internal error: %v", r)
	res.Diagnostics.AddError("internal_error", res.Message, "", "")
}

func (s *Service) recordTableErrors(res *Result, set preset.Set, report rename.Report) {
	for _, tr := range report.Tables {
		if tr.Err == nil {
			continue
		}

		var unknown *mapping.UnknownPresetError
		if errors.As(tr.Err, &unknown) {
			var known []string
			if t, ok := set.Table(tr.Table); ok {
				known = t.Names()
			}

			res.Diagnostics.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticWarning,
				Code:        "unknown_preset",
				Message:     unknown.Error() + ", table skipped",
				Table:       tr.Table,
				Subject:     unknown.Preset,
				Suggestions: known,
			})

			continue
		}

		if len(tr.Failed) > 0 {
			for _, f := range tr.Failed {
				res.Diagnostics.AddWarning("rename_failed",
					fmt.Sprintf("%s, bone kept as %q", f.Error(), f.Kept), tr.Table, f.From)
			}

			continue
		}

		res.Diagnostics.AddError("rename_failed", tr.Err.Error(), tr.Table, "")
	}
}

// unknownEverywhere returns the names among presets that no table defines.
func unknownEverywhere(set preset.Set, presets ...string) []string {
	known := make(map[string]bool)
	for _, name := range set.PresetNames() {
		known[name] = true
	}

	var missing []string
	for _, p := range presets {
		if !known[p] {
			missing = append(missing, p)
		}
	}

	return missing
}

func preconditionCode(err error) string {
	var notArmature *skeleton.NotAnArmatureError
	if errors.As(err, &notArmature) {
		return "not_an_armature"
	}

	if errors.Is(err, skeleton.ErrNotEditable) {
		return "not_editable"
	}

	return "precondition_failed"
}

func fail(res Result, prefix string, err error) Result {
	res.OK = false
	res.Message = err.Error()

	if prefix != "" {
		res.Message = prefix + ": " + res.Message
	}

	if msg := firstError(res.Diagnostics); msg != "" && !strings.Contains(res.Message, msg) {
		res.Message += "; " + msg
	}

	return res
}

func firstError(diags diagnostic.Diagnostics) string {
	d, ok := common.First(diags.Errors)
	if !ok {
		return ""
	}

	return d.Message
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return strings.Join(quoted, ", ")
}
