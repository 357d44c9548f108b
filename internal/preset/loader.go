package preset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"bone-renamer/internal/diagnostic"
)

// Source names one tabular source and how to read it.
type Source struct {
	Name   string
	Path   string
	Layout Layout
}

// Cache stores parsed tables keyed by a checksum of their source.
type Cache interface {
	Lookup(key string) (*Table, diagnostic.Diagnostics, bool, error)
	Store(key string, table *Table, diags diagnostic.Diagnostics) error
}

// Loader reads preset tables from a filesystem.
type Loader struct {
	fs     billy.Filesystem
	strict bool
	cache  Cache
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStrict rejects ragged rows instead of keeping them.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithCache enables lookups in and writes to c.
func WithCache(c Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs billy.Filesystem, opts ...LoaderOption) *Loader {
	l := &Loader{fs: fs}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads and parses one source. It never returns a nil table: on
// failure the table is empty, the error is a *LoadError and the same
// failure is recorded as a load_failed diagnostic.
func (l *Loader) Load(src Source) (*Table, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	data, err := util.ReadFile(l.fs, src.Path)
	if err != nil {
		return l.fail(src, err, diags)
	}

	key := checksum(src, l.strict, data)

	if l.cache != nil {
		table, cached, ok, err := l.cache.Lookup(key)
		if err != nil {
			diags.AddWarning("cache_unavailable", fmt.Sprintf("cache lookup failed: %v", err), src.Name, src.Path)
		} else if ok {
			diags.Merge(cached)
			diags.AddInfo("cache_hit", "table served from cache", src.Name, src.Path)

			return table, diags, nil
		}
	}

	table, parseDiags, err := Parse(src.Name, data, ParseOptions{Layout: src.Layout, Strict: l.strict})
	diags.Merge(parseDiags)

	if err != nil {
		return l.fail(src, err, diags)
	}

	if l.cache != nil {
		if err := l.cache.Store(key, table, parseDiags); err != nil {
			diags.AddWarning("cache_unavailable", fmt.Sprintf("cache store failed: %v", err), src.Name, src.Path)
		}
	}

	return table, diags, nil
}

// LoadAll loads every source in order. Failed sources contribute an empty
// table so the set keeps one entry per source.
func (l *Loader) LoadAll(sources []Source) (Set, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	set := make(Set, 0, len(sources))

	for _, src := range sources {
		table, d, _ := l.Load(src)
		diags.Merge(d)
		set = append(set, table)
	}

	return set, diags
}

func (l *Loader) fail(src Source, cause error, diags diagnostic.Diagnostics) (*Table, diagnostic.Diagnostics, error) {
	loadErr := &LoadError{Table: src.Name, Path: src.Path, Err: cause}
	diags.AddError("load_failed", loadErr.Error(), src.Name, src.Path)

	return EmptyTable(src.Name), diags, loadErr
}

// checksum keys a cached table on everything that affects parsing.
func checksum(src Source, strict bool, data []byte) string {
	h := sha256.New()
	h.Write([]byte(src.Name))
	h.Write([]byte{0})
	h.Write([]byte(src.Layout.String()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(strict)))
	h.Write([]byte{0})
	h.Write(data)

	return hex.EncodeToString(h.Sum(nil))
}
