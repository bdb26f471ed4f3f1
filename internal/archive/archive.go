// Package archive keeps a local history of generated newsletters so past
// runs can be listed, reread, and pruned. The archive is bookkeeping
// only: generation never depends on it.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Archive struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Entry is one recorded newsletter run.
type Entry struct {
	ID           int64
	CreatedAt    time.Time
	Title        string
	Topic        string
	Format       string
	ArticleCount int
	Body         string
}

func Open(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	a := &Archive{readDB: readDB, writeDB: writeDB}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) init() error {
	_, err := a.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS newsletters (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at    DATETIME NOT NULL,
			title         TEXT NOT NULL,
			topic         TEXT NOT NULL,
			format        TEXT NOT NULL,
			article_count INTEGER NOT NULL,
			body          TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_newsletters_created ON newsletters(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (a *Archive) Close() error {
	var errs []error
	if a.readDB != nil {
		errs = append(errs, a.readDB.Close())
	}
	if a.writeDB != nil {
		errs = append(errs, a.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record stores one generated newsletter and returns its id.
func (a *Archive) Record(e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := a.writeDB.Exec(`
		INSERT INTO newsletters (created_at, title, topic, format, article_count, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.CreatedAt, e.Title, e.Topic, e.Format, e.ArticleCount, e.Body)
	if err != nil {
		return 0, fmt.Errorf("recording newsletter: %w", err)
	}
	return res.LastInsertId()
}

// List returns recent entries, newest first, without their bodies.
func (a *Archive) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.readDB.Query(`
		SELECT id, created_at, title, topic, format, article_count
		FROM newsletters ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying newsletters: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Title, &e.Topic, &e.Format, &e.ArticleCount); err != nil {
			return nil, fmt.Errorf("scanning newsletter: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry with its rendered body.
func (a *Archive) Get(id int64) (*Entry, error) {
	var e Entry
	err := a.readDB.QueryRow(`
		SELECT id, created_at, title, topic, format, article_count, body
		FROM newsletters WHERE id = ?
	`, id).Scan(&e.ID, &e.CreatedAt, &e.Title, &e.Topic, &e.Format, &e.ArticleCount, &e.Body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("newsletter %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying newsletter %d: %w", id, err)
	}
	return &e, nil
}

// Prune deletes entries older than the retention window and returns the
// number removed.
func (a *Archive) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := a.writeDB.Exec("DELETE FROM newsletters WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning newsletters: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the entry count and on-disk size of the archive.
func (a *Archive) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := a.readDB.QueryRow("SELECT COUNT(*) FROM newsletters").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting newsletters: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("reading archive size: %w", err)
	}
	return count, info.Size(), nil
}
