package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"bone-renamer/internal/cache"
	"bone-renamer/internal/config"
	"bone-renamer/internal/diagnostic"
	"bone-renamer/internal/logging"
	"bone-renamer/internal/service"
	"bone-renamer/internal/skeleton"
)

var version = "dev"

// app holds the state shared by every command.
type app struct {
	fs billy.Filesystem

	configPath string
	logLevel   string
	tables     []string
	strict     bool
	useCache   bool

	logger hclog.Logger
	closer io.Closer
}

// newApp creates an app working on the OS filesystem. Paths are made
// absolute before they reach fs.
func newApp() *app {
	return &app{fs: osfs.New("/")}
}

func (a *app) abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	if p, err := filepath.Abs(path); err == nil {
		return p
	}

	return path
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if a.configPath != "" {
		cfg, err = config.LoadFile(a.fs, a.abs(a.configPath))
	} else {
		cfg, err = config.LoadOptional(a.fs, a.abs(config.DefaultFileName))
	}

	if err != nil {
		return nil, err
	}

	if len(a.tables) > 0 {
		cfg.Tables = cfg.Tables[:0]
		for _, spec := range a.tables {
			cfg.Tables = append(cfg.Tables, parseTableFlag(spec))
		}

		data, err := config.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to apply --table flags: %w", err)
		}

		if cfg, err = config.Parse(data); err != nil {
			return nil, fmt.Errorf("invalid --table flags: %w", err)
		}
	}

	if a.strict {
		cfg.Strict = true
	}

	if a.useCache {
		cfg.Cache.Enabled = true
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg.ResolvePaths(wd)

	return cfg, nil
}

// parseTableFlag accepts "path" or "name=path".
func parseTableFlag(spec string) config.TableConfig {
	if name, path, ok := strings.Cut(spec, "="); ok {
		return config.TableConfig{Name: name, Path: path}
	}

	return config.TableConfig{Path: spec}
}

// service builds the service for one command run.
func (a *app) service(cmd *cobra.Command) (*service.Service, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	a.logger = logging.NewLogger("bone-renamer", logging.GetLogLevel(a.logLevel, cfg.LogLevel), cmd.ErrOrStderr())

	opts := []service.Option{service.WithLogger(a.logger)}

	if cfg.Cache.Enabled {
		c, err := cache.Open(cfg.Cache.Path, cache.WithMaxAge(cache.DefaultMaxAge))
		if err != nil {
			a.logger.Warn("cache disabled", "path", cfg.Cache.Path, "error", err)
		} else {
			a.closer = c
			opts = append(opts, service.WithCache(c))
		}
	}

	return service.New(a.fs, cfg, opts...), nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

// readSkeleton builds the target skeleton from a document path or an
// explicit bone list.
func (a *app) readSkeleton(cfg *config.Config, path string, bones []string) (skeleton.Skeleton, *skeleton.Document, error) {
	if path == "" {
		if len(bones) == 0 {
			return nil, nil, errors.New("either a skeleton document or --bones is required")
		}

		return skeleton.NewArmature(bones...), nil, nil
	}

	data, err := util.ReadFile(a.fs, a.abs(path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read skeleton %s: %w", path, err)
	}

	doc, err := skeleton.ParseDocument(data, cfg.DocumentOptions())
	if err != nil {
		return nil, nil, err
	}

	return doc, doc, nil
}

func (a *app) writeDocument(doc *skeleton.Document, path string) error {
	if err := util.WriteFile(a.fs, a.abs(path), doc.JSON(), 0o644); err != nil {
		return fmt.Errorf("failed to write skeleton %s: %w", path, err)
	}

	return nil
}

// report prints the result and turns a failed result into an error.
func report(w io.Writer, res service.Result) error {
	printDiagnostics(w, res.Diagnostics)

	if !res.OK {
		return errors.New(res.Message)
	}

	_, _ = fmt.Fprintln(w, res.Message)

	return nil
}

func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		_, _ = fmt.Fprintf(w, "%s: %s\n", d.Severity, d.String())
	}
}
