package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"bone-renamer/internal/common"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the path of a changed table file.
type ChangeFunc func(ctx context.Context, path string)

// Watcher observes a fixed set of files.
type Watcher struct {
	files    map[string]string
	dirs     []string
	logger   hclog.Logger
	debounce time.Duration
}

// New creates a Watcher for paths. A nil logger discards output.
func New(paths []string, logger hclog.Logger) *Watcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	w := &Watcher{
		files:    make(map[string]string, len(paths)),
		logger:   logger,
		debounce: DefaultDebounce,
	}

	dirs := make([]string, 0, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}

		w.files[abs] = p
		dirs = append(dirs, filepath.Dir(abs))
	}

	w.dirs = common.UniqueOrdered(dirs)

	return w
}

// SetDebounce changes the quiet period; zero reports every event.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is cancelled, calling onChange for every watched
// file that is written, created, renamed or removed.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		w.logger.Debug("watching directory", "dir", dir)
	}

	pending := make(map[string]time.Time)

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			orig, watched := w.files[filepath.Clean(ev.Name)]
			if !watched || ev.Op == fsnotify.Chmod {
				continue
			}

			w.logger.Trace("file event", "path", orig, "op", ev.Op.String())

			if w.debounce <= 0 {
				onChange(ctx, orig)
				continue
			}

			pending[orig] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", "error", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}

				delete(pending, path)
				onChange(ctx, path)
			}
		}
	}
}

func (w *Watcher) tick() time.Duration {
	if w.debounce <= 0 {
		return time.Second
	}

	return w.debounce / 4
}
