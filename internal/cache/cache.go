// Package cache stores fetched article lists on disk, one JSON file per
// fingerprinted request. The file's modification time is the freshness
// clock: entries older than the TTL are treated as missing. Every I/O
// failure degrades to a cache miss so a broken cache can never break a
// run.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ripley-h/newsgen/internal/news"
)

// DefaultTTL is the freshness window applied when none is configured.
const DefaultTTL = 3600 * time.Second

type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// Open prepares a cache store rooted at dir, creating it if needed.
func Open(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Lookup returns the cached article list for key if the entry exists and
// is younger than the TTL. Read and decode errors report a miss.
func (s *Store) Lookup(key string) ([]news.Article, bool) {
	p := s.path(key)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if s.now().Sub(info.ModTime()) >= s.ttl {
		return nil, false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		logrus.WithError(err).Warn("cache read failed, fetching live")
		return nil, false
	}
	var articles []news.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		logrus.WithError(err).Warn("cache entry corrupt, fetching live")
		return nil, false
	}
	return articles, true
}

// Store writes the article list under key, fully replacing any prior
// entry and resetting its age. The write goes through a temp file and
// rename so a partial write never leaves a corrupt entry behind.
func (s *Store) Store(key string, articles []news.Article) error {
	data, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp")
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
