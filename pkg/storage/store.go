// Package storage owns the SQLite database behind blogdex: schema,
// connection lifecycle, the loader write path, and the pushed-down summary
// and report queries consumed by the search service. Filtering, ordering,
// aggregation and windowing all happen inside SQL; callers never receive
// more rows than they asked for.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store is a handle to the blog dataset. All query methods are read-only;
// the only write path is LoadDataset, used by the loader command.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT,
		author_id INTEGER REFERENCES users(id),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY,
		post_id INTEGER NOT NULL REFERENCES posts(id),
		author_id INTEGER REFERENCES users(id),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_created ON comments(post_id, created_at)`,
}

// Open opens (creating if needed) the database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Apply performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Stats returns dataset statistics: row counts per table and the time range
// covered by the posts.
func (s *Store) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := map[string]string{
		"total_users":    "SELECT COUNT(*) FROM users",
		"total_posts":    "SELECT COUNT(*) FROM posts",
		"total_comments": "SELECT COUNT(*) FROM comments",
	}
	for key, query := range counts {
		var n int
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting rows for %s: %w", key, err)
		}
		stats[key] = n
	}

	var oldestStr, newestStr sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT MIN(created_at), MAX(created_at) FROM posts").Scan(&oldestStr, &newestStr)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("getting post date range: %w", err)
	}

	if oldestStr.Valid && newestStr.Valid {
		oldest, err := time.Parse(time.RFC3339, oldestStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing oldest post time: %w", err)
		}
		newest, err := time.Parse(time.RFC3339, newestStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing newest post time: %w", err)
		}
		stats["oldest_post"] = oldest
		stats["newest_post"] = newest
	}

	return stats, nil
}
