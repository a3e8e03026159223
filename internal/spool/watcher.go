package spool

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/ports"
)

// Renderer is the slice of the render service the watcher needs.
type Renderer interface {
	ShowContent(ctx context.Context, id domain.ContentID, content domain.Content) (domain.Outcome, error)
}

// defaultDebounce is how long the watcher waits after a file event before
// scanning, so a producer writing a file in several chunks is seen once.
const defaultDebounce = 200 * time.Millisecond

// Watcher monitors the spool directory and dispatches new message files in
// name order. Files are renamed with the ".sent" suffix after a successful
// dispatch; malformed files are logged and skipped, and re-delivery after a
// dispatch failure needs nothing more than the next event or scan.
type Watcher struct {
	mu sync.Mutex // guards timer

	dir      string
	service  Renderer
	logger   ports.Logger
	debounce time.Duration
	timer    *time.Timer

	// scanMu serializes Scan. Debounce timers fire on their own
	// goroutines, and a dispatch can sit behind the rate gate for many
	// seconds; without serialization two scans would list the same
	// not-yet-renamed file and dispatch it twice.
	scanMu sync.Mutex
}

// NewWatcher creates a watcher for the given spool directory.
func NewWatcher(dir string, service Renderer, logger ports.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		service:  service,
		logger:   logger,
		debounce: defaultDebounce,
	}
}

// Run watches the directory until the context is canceled. The directory is
// scanned once on startup so messages spooled while flapship was down are
// not lost.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	defer w.stopTimer()

	w.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".toml") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounceScan(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", ports.Err(err))
		}
	}
}

// Scan processes every pending message file in the directory, oldest name
// first. Scans run one at a time; the pending list is taken under the same
// lock, so a file renamed by an earlier scan is never seen again.
func (w *Watcher) Scan(ctx context.Context) {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	for _, path := range w.pending() {
		w.process(ctx, path)
	}
}

// pending lists unprocessed .toml files in name order.
func (w *Watcher) pending() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("spool scan failed", ports.Err(err))
		return nil
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(w.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths
}

func (w *Watcher) process(ctx context.Context, path string) {
	id, content, err := ReadMessage(path)
	if err != nil {
		w.logger.Warn("skipping malformed spool message",
			ports.String("file", filepath.Base(path)),
			ports.Err(err),
		)
		return
	}

	outcome, err := w.service.ShowContent(ctx, id, content)
	if err != nil {
		w.logger.Error("spool dispatch failed",
			ports.String("file", filepath.Base(path)),
			ports.Err(err),
		)
		return
	}

	w.logger.Info("spool message dispatched",
		ports.String("file", filepath.Base(path)),
		ports.String("status", outcome.Status.String()),
	)

	if err := os.Rename(path, path+sentSuffix); err != nil {
		w.logger.Warn("failed to mark message sent", ports.Err(err))
	}
}

func (w *Watcher) debounceScan(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.Scan(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}
