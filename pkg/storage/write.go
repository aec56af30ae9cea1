package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/blogdex/blogdex/pkg/core"
)

// timeFormat is a fixed-width UTC layout for stored timestamps. Binding
// time.Time directly would let the driver trim trailing zeros, and then a
// value with a fractional second sorts lexically before one without
// ('.' < 'Z'). Fixed precision keeps the text ordering chronological.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// Dataset is the wire format of a blog dump accepted by the loader.
type Dataset struct {
	Users    []core.User    `json:"users"`
	Posts    []core.Post    `json:"posts"`
	Comments []core.Comment `json:"comments"`
}

// LoadDataset imports a dump into the store in a single transaction.
// Existing rows with the same ids are replaced, so reloading the same dump
// is idempotent. Timestamps are stored as fixed-precision UTC text so that
// lexical ordering of the stored values matches chronological ordering
// regardless of the precision the dump carries.
func (s *Store) LoadDataset(ctx context.Context, ds *Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				logger().Warnf("failed to rollback transaction: %v", err)
			}
		}
	}()

	userStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO users (id, name) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing user statement: %w", err)
	}
	defer func() {
		if err := userStmt.Close(); err != nil {
			logger().Warnf("failed to close user statement: %v", err)
		}
	}()

	postStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO posts (id, title, content, author_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing post statement: %w", err)
	}
	defer func() {
		if err := postStmt.Close(); err != nil {
			logger().Warnf("failed to close post statement: %v", err)
		}
	}()

	commentStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO comments (id, post_id, author_id, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing comment statement: %w", err)
	}
	defer func() {
		if err := commentStmt.Close(); err != nil {
			logger().Warnf("failed to close comment statement: %v", err)
		}
	}()

	for _, u := range ds.Users {
		if _, err := userStmt.ExecContext(ctx, u.ID, u.Name); err != nil {
			return fmt.Errorf("inserting user %d: %w", u.ID, err)
		}
	}

	for _, p := range ds.Posts {
		if _, err := postStmt.ExecContext(ctx, p.ID, p.Title, p.Content, p.AuthorID, formatTime(p.CreatedAt)); err != nil {
			return fmt.Errorf("inserting post %d: %w", p.ID, err)
		}
	}

	for _, c := range ds.Comments {
		if _, err := commentStmt.ExecContext(ctx, c.ID, c.PostID, c.AuthorID, formatTime(c.CreatedAt)); err != nil {
			return fmt.Errorf("inserting comment %d: %w", c.ID, err)
		}
	}

	err = tx.Commit()
	if err == nil {
		committed = true
	}
	return err
}
