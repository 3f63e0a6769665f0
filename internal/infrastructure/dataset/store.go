package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

// SnapshotCache lets callers skip re-parsing the dataset file when its
// fingerprint has not changed since the last load.
type SnapshotCache interface {
	Get(fingerprint string) (*match.Snapshot, bool)
	Put(snapshot *match.Snapshot)
}

// MemoryCache is a single-slot SnapshotCache; the dataset file only ever has
// one current state.
type MemoryCache struct {
	mu       sync.RWMutex
	snapshot *match.Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(fingerprint string) (*match.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.snapshot.Fingerprint != fingerprint {
		return nil, false
	}
	return c.snapshot, true
}

func (c *MemoryCache) Put(snapshot *match.Snapshot) {
	if snapshot == nil {
		return
	}
	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()
}

// Store reads and writes the merged dataset file.
type Store struct {
	path   string
	cache  SnapshotCache
	logger *logging.Logger
}

func NewStore(path string, cache SnapshotCache, logger *logging.Logger) *Store {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{path: path, cache: cache, logger: logger}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the current snapshot. A missing or unreadable file yields an
// empty snapshot rather than an error: the service degrades to "no data"
// responses until the next refresh lands.
func (s *Store) Load(ctx context.Context) *match.Snapshot {
	info, err := os.Stat(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "dataset stat failed", "path", s.path, "error", err)
		}
		return &match.Snapshot{}
	}

	fingerprint := strconv.FormatInt(info.ModTime().UnixNano(), 10)
	if snapshot, ok := s.cache.Get(fingerprint); ok {
		return snapshot
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.WarnContext(ctx, "dataset read failed", "path", s.path, "error", err)
		return &match.Snapshot{}
	}

	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset decode failed", "path", s.path, "error", err)
		return &match.Snapshot{}
	}

	snapshot := &match.Snapshot{Records: records, Fingerprint: fingerprint}
	s.cache.Put(snapshot)
	s.logger.InfoContext(ctx, "dataset loaded", "path", s.path, "records", len(records))
	return snapshot
}

// Save writes records atomically: encode to a temp file in the same
// directory, then rename over the target.
func (s *Store) Save(ctx context.Context, records []match.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create dataset directory")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := Encode(buf, records); err != nil {
		return errors.Wrap(err, "encode dataset")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.B); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "replace dataset file")
	}

	s.logger.InfoContext(ctx, "dataset saved", "path", s.path, "records", len(records))
	return nil
}
