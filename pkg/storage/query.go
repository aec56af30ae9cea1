package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blogdex/blogdex/pkg/core"
)

// summarySelect projects posts into summaries entirely inside the query:
// excerpt truncation, author-name defaulting and the comment count are all
// computed by SQLite, so a page of summaries is the only thing crossing the
// driver boundary.
var summarySelect = fmt.Sprintf(`
	SELECT p.id, p.title,
	       CASE
	           WHEN p.content IS NULL OR p.content = '' THEN ''
	           WHEN length(p.content) > %d THEN substr(p.content, 1, %d) || '...'
	           ELSE p.content
	       END AS excerpt,
	       COALESCE(NULLIF(u.name, ''), 'Unknown') AS author_name,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	       p.created_at
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id`, core.ExcerptLength, core.ExcerptLength)

// sortColumns maps the closed set of sort fields onto ORDER BY targets.
// comment_count refers to the projected aggregate column.
var sortColumns = map[core.SortField]string{
	core.SortByID:           "p.id",
	core.SortByTitle:        "p.title",
	core.SortByCommentCount: "comment_count",
	core.SortByCreatedAt:    "p.created_at",
}

// orderClause resolves a sort field and direction into an ORDER BY clause.
// The post id ascending is always appended as a secondary key so rows with
// equal primary values still have a total order, which keeps pagination
// stable across calls.
func orderClause(field core.SortField, descending bool) (string, error) {
	column, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", string(field))
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, p.id ASC", column, direction), nil
}

// escapeLike escapes LIKE metacharacters so user input always matches
// literally. The pattern is used with ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// QuerySummaries runs a single pushed-down query for the given filter,
// ordering and window. Callers are expected to have validated q; the sort
// field is still checked here so a bad value can never reach the SQL text.
func (s *Store) QuerySummaries(ctx context.Context, q core.SummaryQuery) ([]core.PostSummary, error) {
	order, err := orderClause(q.Sort, q.Descending)
	if err != nil {
		return nil, err
	}

	sqlQuery := summarySelect
	var args []interface{}

	if q.Query != "" {
		pattern := "%" + escapeLike(q.Query) + "%"
		sqlQuery += `
	WHERE (p.title LIKE ? ESCAPE '\' OR p.content LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}

	sqlQuery += "\n\t" + order + "\n\tLIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying post summaries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger().Warnf("failed to close summary rows: %v", err)
		}
	}()

	var summaries []core.PostSummary
	for rows.Next() {
		var sum core.PostSummary
		var createdAt time.Time

		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Excerpt, &sum.AuthorName, &sum.CommentCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		sum.CreatedAt = createdAt
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}
