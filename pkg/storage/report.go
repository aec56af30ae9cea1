package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blogdex/blogdex/pkg/core"

	blogdexlog "github.com/blogdex/blogdex/pkg/log"
)

func logger() *blogdexlog.Logger {
	return blogdexlog.ForComponent("storage")
}

// reportSelect computes one aggregate row per post, newest post first. The
// latest commenter is resolved by a correlated subquery: "Unknown" when the
// latest comment has no (named) author, "None" when the post has no
// comments at all. Ties on comment time are broken by the comment id, so
// the sub-aggregate is deterministic.
const reportSelect = `
	SELECT p.id,
	       COALESCE(NULLIF(u.name, ''), 'Unknown') AS author_name,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	       COALESCE((
	           SELECT COALESCE(NULLIF(cu.name, ''), 'Unknown')
	           FROM comments c
	           LEFT JOIN users cu ON cu.id = c.author_id
	           WHERE c.post_id = p.id
	           ORDER BY c.created_at DESC, c.id DESC
	           LIMIT 1
	       ), 'None') AS latest_comment_author
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id
	ORDER BY p.created_at DESC, p.id ASC
	LIMIT ?`

// StreamReport opens a lazy cursor over per-post report aggregates, newest
// first, bounded to maxItems rows. Rows are produced one at a time as the
// caller pulls them; nothing beyond the in-flight row is buffered. The
// caller owns the returned cursor and must Close it.
func (s *Store) StreamReport(ctx context.Context, maxItems int) (core.ReportRows, error) {
	rows, err := s.db.QueryContext(ctx, reportSelect, maxItems)
	if err != nil {
		return nil, fmt.Errorf("querying report aggregates: %w", err)
	}
	return &reportRows{rows: rows}, nil
}

// reportRows adapts *sql.Rows to core.ReportRows.
type reportRows struct {
	rows *sql.Rows
}

func (r *reportRows) Next() bool {
	return r.rows.Next()
}

func (r *reportRows) Report() (core.PostReport, error) {
	var rep core.PostReport
	if err := r.rows.Scan(&rep.ID, &rep.AuthorName, &rep.CommentCount, &rep.LatestCommentAuthor); err != nil {
		return core.PostReport{}, fmt.Errorf("scanning report row: %w", err)
	}
	return rep, nil
}

func (r *reportRows) Err() error {
	return r.rows.Err()
}

func (r *reportRows) Close() error {
	return r.rows.Close()
}
