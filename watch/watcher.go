// Package watch reports batches of record file changes under a lint root.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/recordlint/source"
	"github.com/c360studio/recordlint/source/parser"
)

const (
	// eventChannelBuffer is the size of the batch channel.
	eventChannelBuffer = 16

	// defaultDebounce applies when no debounce is configured.
	defaultDebounce = 300 * time.Millisecond
)

// Matcher decides which root-relative, slash-separated paths are records.
type Matcher interface {
	Matches(path string) bool
}

// Operation indicates the type of file change.
type Operation string

// OpCreate, OpModify and OpDelete enumerate the change types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is one changed record file.
type Event struct {
	// Path is slash-separated and relative to the root.
	Path string

	// Operation is the type of change.
	Operation Operation
}

// Watcher watches a root directory and emits debounced batches of changes.
type Watcher struct {
	root     string
	matcher  Matcher
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection, keyed by relative path
	hashMu sync.RWMutex
	hashes map[string]string

	batches chan []Event
	dropped atomic.Int64
}

// New creates a watcher for root. Only paths accepted by matcher are reported.
func New(root string, matcher Matcher, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		root:     root,
		matcher:  matcher,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		batches:  make(chan []Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of change batches. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan []Event {
	return w.batches
}

// Prime records the content hashes of already-linted inputs so that
// unchanged rewrites do not trigger a batch.
func (w *Watcher) Prime(inputs []source.Input) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	for _, in := range inputs {
		w.hashes[in.Path] = parser.ContentHash([]byte(in.Text))
	}
}

// Start adds watches under root and begins processing events.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Record watcher started", "root", w.root, "debounce", w.debounce)
	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedBatches returns the number of batches dropped due to a full channel.
func (w *Watcher) DroppedBatches() int64 {
	return w.dropped.Load()
}

// addWatchesRecursive adds watches to every non-hidden directory under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || base == "node_modules"
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.batches)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent records a single fsnotify event as pending.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.handleNewDirectory(event.Name)
			return
		}
	}

	rel, ok := w.relative(event.Name)
	if !ok || !w.matcher.Matches(rel) {
		return
	}

	w.pendingMu.Lock()
	w.pending[rel] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Record change detected", "path", rel, "op", event.Op.String())
}

func (w *Watcher) handleNewDirectory(path string) {
	if w.skipDir(path) {
		return
	}
	if err := w.addWatchesRecursive(path); err != nil {
		w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	}
}

func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// flushPending turns accumulated changes into one batch.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var batch []Event
	for rel, op := range toProcess {
		if e, ok := w.classify(rel, op); ok {
			batch = append(batch, e)
		}
	}
	if len(batch) == 0 {
		return
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case w.batches <- batch:
		w.logger.Debug("Sent change batch", "changes", len(batch))
	default:
		dropped := w.dropped.Add(1)
		w.logger.Warn("Batch channel full, dropping batch", "changes", len(batch), "total_dropped", dropped)
	}
}

// classify compares the file with its recorded hash. Unchanged content
// yields no event.
func (w *Watcher) classify(rel string, op fsnotify.Op) (Event, bool) {
	content, err := os.ReadFile(filepath.Join(w.root, filepath.FromSlash(rel)))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("Failed to read changed file", "path", rel, "error", err)
			return Event{}, false
		}
		w.hashMu.Lock()
		_, known := w.hashes[rel]
		delete(w.hashes, rel)
		w.hashMu.Unlock()
		// A file created and removed within one window was never reported.
		gone := op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
		return Event{Path: rel, Operation: OpDelete}, known || (gone && !op.Has(fsnotify.Create))
	}

	newHash := parser.ContentHash(content)

	w.hashMu.Lock()
	oldHash, hadHash := w.hashes[rel]
	w.hashes[rel] = newHash
	w.hashMu.Unlock()

	if hadHash && oldHash == newHash {
		return Event{}, false
	}
	if !hadHash {
		return Event{Path: rel, Operation: OpCreate}, true
	}
	return Event{Path: rel, Operation: OpModify}, true
}
