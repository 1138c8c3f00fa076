package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "recordlint.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/recordlint"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvConfigFile names an explicit config file when Loader.File is empty
	EnvConfigFile = "RECORDLINT_CONFIG"
)

// Layer is one configuration source applied by Load.
type Layer struct {
	Name string
	Path string // empty for defaults and overrides
}

// Loader resolves configuration from layered sources.
type Loader struct {
	// File is an explicit config file applied after the project config.
	File string

	logger *slog.Logger
	layers []Layer
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Layers returns the sources applied by the last Load, lowest precedence first.
func (l *Loader) Layers() []Layer {
	return l.layers
}

// Load resolves configuration with layered precedence:
//  1. defaults
//  2. user config (~/.config/recordlint/config.yaml)
//  3. project config (recordlint.yaml in the lint root or a parent, up to the repository root)
//  4. explicit file (Loader.File, else $RECORDLINT_CONFIG)
//  5. overrides, typically from command-line flags
//
// A broken user config is logged and skipped. A broken project or explicit
// config is an error.
func (l *Loader) Load(overrides *Config) (*Config, error) {
	cfg := DefaultConfig()
	l.layers = []Layer{{Name: "defaults"}}

	if path := userConfigPath(); path != "" {
		if err := l.apply(cfg, "user", path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				l.logger.Warn("Skipping user config", "path", path, "error", err)
			}
		}
	}

	start := ""
	if overrides != nil {
		start = overrides.Root
	}
	if path := findProjectConfig(start); path != "" {
		if err := l.apply(cfg, "project", path); err != nil {
			return nil, err
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if path := l.explicitPath(); path != "" {
		if err := l.apply(cfg, "file", path); err != nil {
			return nil, err
		}
	}

	if overrides != nil {
		cfg.Merge(overrides)
		l.layers = append(l.layers, Layer{Name: "overrides"})
	}

	if cfg.Root == "" {
		cfg.Root = detectRoot()
		l.logger.Debug("Detected lint root", "path", cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// apply merges the config file at path into cfg. A relative root in the file
// is resolved against the file's directory.
func (l *Loader) apply(cfg *Config, name, path string) error {
	layer, err := LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("%s config %s: %w", name, path, err)
	}
	if layer.Root != "" && !filepath.IsAbs(layer.Root) {
		layer.Root = filepath.Join(filepath.Dir(path), layer.Root)
	}
	cfg.Merge(layer)
	l.layers = append(l.layers, Layer{Name: name, Path: path})
	l.logger.Debug("Loaded config", "layer", name, "path", path)
	return nil
}

func (l *Loader) explicitPath() string {
	if l.File != "" {
		return l.File
	}
	return os.Getenv(EnvConfigFile)
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig looks for ProjectConfigFile in start (the working
// directory when empty) and its parents. The search stops at the first
// directory that holds a .git entry.
func findProjectConfig(start string) string {
	dir, err := startDir(start)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if isRepoRoot(dir) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// detectRoot returns the enclosing repository root, or the working
// directory outside a repository.
func detectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		if isRepoRoot(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

func startDir(start string) (string, error) {
	if start == "" {
		return os.Getwd()
	}
	return filepath.Abs(start)
}

// isRepoRoot reports whether dir holds a .git directory or worktree file.
func isRepoRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
