package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"bone-renamer/internal/diagnostic"
	"bone-renamer/internal/preset"
)

const schema = `CREATE TABLE IF NOT EXISTS preset_tables (
	key        TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`

// SQLiteCache is a preset.Cache backed by a SQLite file.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

var _ preset.Cache = (*SQLiteCache)(nil)

type entry struct {
	Name        string                 `msgpack:"name"`
	Presets     []presetRecord         `msgpack:"presets"`
	Diagnostics diagnostic.Diagnostics `msgpack:"diagnostics"`
}

type presetRecord struct {
	Name  string   `msgpack:"name"`
	Slots []string `msgpack:"slots"`
}

// DefaultMaxAge is how long entries are kept when the cache is opened with
// WithMaxAge(DefaultMaxAge).
const DefaultMaxAge = 30 * 24 * time.Hour

// Option configures Open.
type Option func(*options)

type options struct {
	maxAge time.Duration
}

// WithMaxAge prunes entries older than d when the cache is opened.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		o.maxAge = d
	}
}

// Open opens or creates the cache database at path.
func Open(path string, opts ...Option) (*SQLiteCache, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	c := &SQLiteCache{db: db, path: path}

	if o.maxAge != 0 {
		if _, err := c.Prune(o.maxAge); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return c, nil
}

// Path returns the database file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Lookup returns the table stored under key, if any.
func (c *SQLiteCache) Lookup(key string) (*preset.Table, diagnostic.Diagnostics, bool, error) {
	var payload []byte

	err := c.db.QueryRow("SELECT payload FROM preset_tables WHERE key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, diagnostic.Diagnostics{}, false, nil
	}
	if err != nil {
		return nil, diagnostic.Diagnostics{}, false, fmt.Errorf("query cache: %w", err)
	}

	var e entry
	if err := msgpack.Unmarshal(payload, &e); err != nil {
		return nil, diagnostic.Diagnostics{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}

	presets := make([]preset.Preset, 0, len(e.Presets))
	for _, r := range e.Presets {
		presets = append(presets, preset.Preset{Name: r.Name, Slots: r.Slots})
	}

	table, _ := preset.NewTable(e.Name, presets)

	return table, e.Diagnostics, true, nil
}

// Store saves table and the diagnostics produced while parsing it.
func (c *SQLiteCache) Store(key string, table *preset.Table, diags diagnostic.Diagnostics) error {
	e := entry{Name: table.Name(), Diagnostics: diags}
	for _, p := range table.Presets() {
		e.Presets = append(e.Presets, presetRecord{Name: p.Name, Slots: p.Slots})
	}

	payload, err := msgpack.Marshal(&e)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO preset_tables (key, name, payload, created_at) VALUES (?, ?, ?, ?)",
		key, e.Name, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}

	return nil
}

// Prune deletes entries older than maxAge and returns how many were removed.
func (c *SQLiteCache) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	res, err := c.db.Exec("DELETE FROM preset_tables WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}

	return res.RowsAffected()
}
