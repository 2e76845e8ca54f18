package knowledge

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Loader reads a knowledge base collection from a JSON file.
//
// The parsed collection is cached as an immutable snapshot and re-read only
// when the file's modification time changes. This trades per-request
// re-parsing for a staleness window of one mtime granule: an edit that does
// not advance the mtime is not picked up until one that does.
//
// A missing or malformed file is not an error to callers: Entries logs the
// problem and reports an empty, unavailable collection so request handling
// degrades to "no match" behavior instead of failing.
//
// Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	entries []Entry
	modTime time.Time
	valid   bool
}

// NewLoader creates a loader for the JSON file at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Path returns the backing file path.
func (l *Loader) Path() string { return l.path }

// Entries returns the current snapshot of the collection.
//
// The second return value reports availability: false means the backing
// file is missing or unparsable and the returned slice is empty. Callers
// must not mutate the returned slice.
func (l *Loader) Entries() ([]Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		l.logger.Error("knowledge base file not found", "path", l.path, "error", err)
		l.entries, l.valid = nil, false
		return nil, false
	}

	if l.valid && info.ModTime().Equal(l.modTime) {
		return l.entries, true
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.logger.Error("reading knowledge base file", "path", l.path, "error", err)
		l.entries, l.valid = nil, false
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Error("invalid knowledge base JSON", "path", l.path, "error", err)
		l.entries, l.valid = nil, false
		return nil, false
	}

	l.entries = entries
	l.modTime = info.ModTime()
	l.valid = true
	l.logger.Debug("loaded knowledge base", "path", l.path, "entries", len(entries))
	return entries, true
}
