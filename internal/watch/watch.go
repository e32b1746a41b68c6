// Package watch re-runs a callback when any of a set of files changes.
//
// The parent directories are watched rather than the files themselves so
// that editors which save by renaming a temp file over the original keep
// triggering events. Bursts of events are debounced into one call that
// receives every changed path.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
)

// DefaultDebounce is used when New gets a non-positive period.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the sorted absolute paths that changed since the
// previous call.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher watches files for changes and calls a ChangeFunc after a quiet
// period.
type Watcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]struct{}
	onChange       ChangeFunc
	debouncePeriod time.Duration

	mu            sync.Mutex
	debounceTimer *time.Timer
	pending       map[string]struct{}
}

// New creates a watcher for paths. Every path must exist.
func New(paths []string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.InvalidArgumentf("no files to watch")
	}
	if onChange == nil {
		return nil, errors.InvalidArgumentf("change callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		files:          make(map[string]struct{}, len(paths)),
		onChange:       onChange,
		debouncePeriod: debounce,
		pending:        make(map[string]struct{}),
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}
	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run processes events until ctx is done or the watcher is closed. It
// closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.LoggerFromContext(logger.WithComponent(ctx, "watch"))
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Debugw("file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	// Only Write or Create; a rename-over-original arrives as Create
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if isEditorTemp(event.Name) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// schedule debounces rapid changes into one callback
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, _ := filepath.Abs(path)
	w.pending[abs] = struct{}{}

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		w.fire(ctx)
	})
}

func (w *Watcher) fire(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 || ctx.Err() != nil {
		return
	}
	sort.Strings(paths)
	if err := w.onChange(ctx, paths); err != nil {
		logger.LoggerFromContext(logger.WithComponent(ctx, "watch")).Errorw("change handler failed",
			logger.FieldCount, len(paths),
			logger.FieldError, err)
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

// isEditorTemp checks for swap and backup files written next to the source
func isEditorTemp(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, ".#")
}
