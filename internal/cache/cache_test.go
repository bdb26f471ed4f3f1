package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ripley-h/newsgen/internal/news"
)

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return s
}

func sampleArticles() []news.Article {
	return []news.Article{
		{Title: "Post A", URL: "https://a.com", Content: "Content A", Topic: "ai"},
		{Title: "Post B", URL: "https://b.com", Description: "Desc B", Topic: "ai"},
	}
}

func TestStoreAndLookup(t *testing.T) {
	s := testStore(t, time.Hour)
	key := news.Fingerprint("https://example.com/v2/everything", "ai", 5)

	if _, ok := s.Lookup(key); ok {
		t.Fatal("expected miss before store")
	}

	if err := s.Store(key, sampleArticles()); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok := s.Lookup(key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	if got[0].Title != "Post A" || got[1].Title != "Post B" {
		t.Errorf("article order not preserved: %v", got)
	}
}

func TestLookupExpired(t *testing.T) {
	s := testStore(t, time.Hour)
	key := "abc123"
	if err := s.Store(key, sampleArticles()); err != nil {
		t.Fatalf("store: %v", err)
	}

	// Advance the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, ok := s.Lookup(key); ok {
		t.Error("expected miss for expired entry")
	}
}

func TestStoreOverwritesEntry(t *testing.T) {
	s := testStore(t, time.Hour)
	key := "abc123"

	if err := s.Store(key, sampleArticles()); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if err := s.Store(key, sampleArticles()[:1]); err != nil {
		t.Fatalf("second store: %v", err)
	}

	got, ok := s.Lookup(key)
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 1 {
		t.Errorf("expected full replacement with 1 article, got %d", len(got))
	}
}

func TestLookupCorruptEntry(t *testing.T) {
	s := testStore(t, time.Hour)
	key := "abc123"

	if err := os.WriteFile(filepath.Join(s.dir, key+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt entry: %v", err)
	}

	if _, ok := s.Lookup(key); ok {
		t.Error("expected corrupt entry to report a miss")
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := news.Fingerprint("https://example.com", "ai", 5)
	b := news.Fingerprint("https://example.com", "ai", 5)
	if a != b {
		t.Errorf("identical requests produced different keys: %s vs %s", a, b)
	}

	c := news.Fingerprint("https://example.com", "ai", 10)
	if a == c {
		t.Error("different max counts should produce different keys")
	}
}
