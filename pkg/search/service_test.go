package search

import (
	"context"
	"errors"
	"testing"

	"github.com/blogdex/blogdex/pkg/core"
)

// fakeStore records the queries it receives and returns canned results.
type fakeStore struct {
	queryCalls  int
	streamCalls int
	lastQuery   core.SummaryQuery

	summaries []core.PostSummary
	queryErr  error

	rows      core.ReportRows
	streamErr error
}

func (f *fakeStore) QuerySummaries(ctx context.Context, q core.SummaryQuery) ([]core.PostSummary, error) {
	f.queryCalls++
	f.lastQuery = q
	return f.summaries, f.queryErr
}

func (f *fakeStore) StreamReport(ctx context.Context, maxItems int) (core.ReportRows, error) {
	f.streamCalls++
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.rows, nil
}

func TestSearchDefaultsToNewestFirst(t *testing.T) {
	store := &fakeStore{summaries: []core.PostSummary{{ID: 1}}}
	service := NewService(store)

	posts, err := service.Search(context.Background(), "  hello  ", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Got %d posts, want 1", len(posts))
	}

	q := store.lastQuery
	if q.Query != "hello" {
		t.Errorf("Query = %q, want trimmed %q", q.Query, "hello")
	}
	if q.Sort != core.SortByCreatedAt || !q.Descending {
		t.Errorf("Expected created_at descending ordering, got %s desc=%v", q.Sort, q.Descending)
	}
	if q.Offset != 0 || q.Limit != 10 {
		t.Errorf("Window = (%d, %d), want (0, 10)", q.Offset, q.Limit)
	}
}

func TestSearchMaxResultsZeroSkipsStore(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	for _, max := range []int{0, -5} {
		posts, err := service.Search(context.Background(), "anything", max)
		if err != nil {
			t.Fatalf("Search(max=%d) failed: %v", max, err)
		}
		if posts == nil || len(posts) != 0 {
			t.Errorf("Search(max=%d) = %v, want empty non-nil slice", max, posts)
		}
	}
	if store.queryCalls != 0 {
		t.Errorf("Store was queried %d times, want 0", store.queryCalls)
	}
}

func TestSearchPagedValidatesSortFirst(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("store should not be reached")}
	service := NewService(store)

	_, err := service.SearchPaged(context.Background(), "q", 0, 10, core.SortField("bogus"), true)
	if err == nil {
		t.Fatal("Expected error for unsupported sort field")
	}
	if store.queryCalls != 0 {
		t.Errorf("Store was queried %d times for an invalid sort, want 0", store.queryCalls)
	}
}

func TestSearchPagedTakeZeroSkipsStore(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	posts, err := service.SearchPaged(context.Background(), "q", 3, 0, core.SortByID, false)
	if err != nil {
		t.Fatalf("SearchPaged failed: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Got %v, want empty non-nil slice", posts)
	}
	if store.queryCalls != 0 {
		t.Errorf("Store was queried %d times for take=0, want 0", store.queryCalls)
	}
}

func TestSearchPagedClampsNegativeSkip(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	if _, err := service.SearchPaged(context.Background(), "", -7, 5, core.SortByTitle, false); err != nil {
		t.Fatalf("SearchPaged failed: %v", err)
	}
	if store.lastQuery.Offset != 0 {
		t.Errorf("Offset = %d, want 0 for negative skip", store.lastQuery.Offset)
	}
	if store.lastQuery.Limit != 5 {
		t.Errorf("Limit = %d, want 5", store.lastQuery.Limit)
	}
}

func TestSearchPagedNilResultBecomesEmptySlice(t *testing.T) {
	store := &fakeStore{summaries: nil}
	service := NewService(store)

	posts, err := service.SearchPaged(context.Background(), "no hits", 0, 10, core.SortByCreatedAt, true)
	if err != nil {
		t.Fatalf("SearchPaged failed: %v", err)
	}
	if posts == nil {
		t.Error("Got nil slice, want empty slice")
	}
}

func TestSearchPagedWrapsStoreError(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("disk on fire")}
	service := NewService(store)

	_, err := service.SearchPaged(context.Background(), "q", 0, 10, core.SortByID, false)
	if err == nil {
		t.Fatal("Expected store error to surface")
	}
	if !errors.Is(err, store.queryErr) {
		t.Errorf("Error %v does not wrap the store error", err)
	}
}
