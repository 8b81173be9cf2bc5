package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the stations document when it changes on disk.
type Watcher struct {
	path     string
	current  *core.Catalog
	onChange func(*core.Catalog)
	debounce time.Duration
	logger   zerolog.Logger
}

// NewWatcher creates a watcher for path. current is the catalog already
// published; onChange receives every new catalog that differs from it.
func NewWatcher(path string, current *core.Catalog, onChange func(*core.Catalog), logger zerolog.Logger) *Watcher {
	return &Watcher{
		path:     path,
		current:  current,
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   logger.With().Str("component", "catalog-watcher").Str("path", path).Logger(),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Editors often replace the file, so watch the directory.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")

		case <-fire:
			fire = nil
			w.Reload()
		}
	}
}

// Reload loads the document once and publishes it if it changed.
// A document that cannot be read or parsed keeps the previous catalog.
func (w *Watcher) Reload() bool {
	next, err := Load(w.path)
	if err != nil && next.IsEmpty() {
		w.logger.Warn().Err(err).Msg("reload failed, keeping previous catalog")
		return false
	}
	if err != nil {
		w.logger.Warn().Err(err).Msg("some stations were rejected")
	}
	if Equal(w.current, next) {
		w.logger.Debug().Msg("stations unchanged")
		return false
	}
	w.current = next
	w.logger.Info().Int("stations", next.Len()).Msg("stations reloaded")
	w.onChange(next)
	return true
}
