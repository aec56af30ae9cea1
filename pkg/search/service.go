// Package search is the read-only query engine over the blog dataset. It
// validates caller input, composes pushed-down store queries (filter,
// projection, ordering with a deterministic tie-break, offset/limit) and
// drives the streaming report. The engine holds no mutable state; every
// operation is independent and safe to call concurrently as long as the
// underlying store handle is.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogdex/blogdex/pkg/core"
	"github.com/blogdex/blogdex/pkg/log"
)

// Store is the composable query surface the engine consumes. Both methods
// push filtering, ordering, aggregation and windowing down into the store;
// nothing is filtered or sorted engine-side.
type Store interface {
	QuerySummaries(ctx context.Context, q core.SummaryQuery) ([]core.PostSummary, error)
	StreamReport(ctx context.Context, maxItems int) (core.ReportRows, error)
}

// Service provides the search and report operations.
type Service struct {
	store Store
}

// NewService creates a search service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func logger() *log.Logger {
	return log.ForComponent("search")
}

// Search returns up to maxResults post summaries matching the free-text
// query, newest first. A blank or all-whitespace query matches everything.
// maxResults <= 0 returns an empty list without touching the store.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]core.PostSummary, error) {
	if maxResults <= 0 {
		return []core.PostSummary{}, nil
	}

	q := core.SummaryQuery{
		Query:      strings.TrimSpace(query),
		Sort:       core.SortByCreatedAt,
		Descending: true,
		Limit:      maxResults,
	}

	summaries, err := s.store.QuerySummaries(ctx, q)
	if err != nil {
		logger().Errorf("search failed (query=%q max_results=%d): %v", query, maxResults, err)
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	if summaries == nil {
		summaries = []core.PostSummary{}
	}
	return summaries, nil
}

// SearchPaged returns the summaries in positions [skip, skip+take) of the
// filtered sequence ordered by the given sort field and direction, with the
// post id ascending as tie-break. An unsupported sort field is rejected
// before any store access. Negative skip is clamped to zero; take <= 0
// short-circuits to an empty result.
func (s *Service) SearchPaged(ctx context.Context, query string, skip, take int, field core.SortField, descending bool) ([]core.PostSummary, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	if take <= 0 {
		return []core.PostSummary{}, nil
	}
	if skip < 0 {
		skip = 0
	}

	q := core.SummaryQuery{
		Query:      strings.TrimSpace(query),
		Sort:       field,
		Descending: descending,
		Offset:     skip,
		Limit:      take,
	}

	summaries, err := s.store.QuerySummaries(ctx, q)
	if err != nil {
		logger().Errorf("paged search failed (query=%q skip=%d take=%d sort=%s): %v", query, skip, take, field, err)
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	if summaries == nil {
		summaries = []core.PostSummary{}
	}
	return summaries, nil
}
