package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/recordlint/source"
)

// maxParallelReads bounds concurrent file reads in Load.
const maxParallelReads = 8

// Loader discovers and reads record files under a root directory.
type Loader struct {
	root    string
	include []string
	exclude []string
	logger  *slog.Logger
}

// NewLoader creates a loader rooted at root.
// Include and exclude are doublestar patterns relative to root.
func NewLoader(root string, include, exclude []string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		root:    root,
		include: include,
		exclude: exclude,
		logger:  logger,
	}
}

// Discover expands the include patterns and drops excluded paths.
// Returns slash-separated paths relative to root, sorted and de-duplicated.
func (l *Loader) Discover() ([]string, error) {
	fsys := os.DirFS(l.root)
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range l.include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || l.excluded(m) {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}

	sort.Strings(paths)
	l.logger.Debug("Discovered records", "root", l.root, "count", len(paths))
	return paths, nil
}

// Matches reports whether a slash-separated path relative to root would be
// discovered: it matches an include pattern and no exclude pattern.
func (l *Loader) Matches(path string) bool {
	if l.excluded(path) {
		return false
	}
	for _, pattern := range l.include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Root returns the directory the loader reads from.
func (l *Loader) Root() string {
	return l.root
}

func (l *Loader) excluded(path string) bool {
	for _, pattern := range l.exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Load reads the given paths and returns inputs in the same order.
func (l *Loader) Load(ctx context.Context, paths []string) ([]source.Input, error) {
	inputs := make([]source.Input, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)

	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("read %s: %w", rel, err)
			}
			inputs[i] = source.Input{Path: rel, Text: string(data)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// DiscoverAndLoad runs Discover followed by Load.
func (l *Loader) DiscoverAndLoad(ctx context.Context) ([]source.Input, error) {
	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, paths)
}
