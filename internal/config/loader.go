package config

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Loader serves the current configuration and re-reads the backing file
// whenever its modification time changes. Many pipeline workers read through
// a single Loader; a stale snapshot is never served past a config change.
type Loader struct {
	path string

	mu    sync.Mutex
	mtime time.Time
	cfg   *Config
}

// NewLoader creates a Loader for the given config file path. The file is not
// read until the first Current call.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// NewStaticLoader wraps an already-loaded config that never reloads.
// Used by tests and by callers that resolved the config themselves.
func NewStaticLoader(cfg *Config) *Loader {
	return &Loader{cfg: cfg, mtime: time.Unix(1, 0)}
}

// Current returns the configuration snapshot, reloading from disk if the
// file's mtime moved since the last read. When the file is unreadable the
// built-in defaults are returned so evaluation can always proceed.
func (l *Loader) Current() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		if l.cfg == nil {
			l.cfg = Default()
		}
		return l.cfg
	}

	var mtime time.Time
	if info, err := os.Stat(l.path); err == nil {
		mtime = info.ModTime()
	}

	if l.cfg != nil && mtime.Equal(l.mtime) {
		return l.cfg
	}

	cfg, err := Load(l.path)
	if err != nil {
		slog.Warn("config unreadable, using built-in defaults",
			slog.String("path", l.path), slog.String("error", err.Error()))
		if l.cfg == nil {
			l.cfg = Default()
		}
		return l.cfg
	}

	l.cfg = cfg
	l.mtime = mtime
	return l.cfg
}

// Path returns the backing file path, empty for static loaders.
func (l *Loader) Path() string {
	return l.path
}
