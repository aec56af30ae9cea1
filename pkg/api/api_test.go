package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blogdex/blogdex/pkg/core"
	"github.com/blogdex/blogdex/pkg/search"
	"github.com/blogdex/blogdex/pkg/storage"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "blogdex.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	})

	created := func(day int) time.Time {
		return time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC)
	}
	ds := &storage.Dataset{
		Users: []core.User{
			{ID: 1, Name: "Alice"},
			{ID: 2, Name: "Bob"},
		},
		Posts: []core.Post{
			{ID: 1, Title: "First Post", Content: "Hello world.", AuthorID: int64Ptr(1), CreatedAt: created(1)},
			{ID: 2, Title: "Second Post", Content: "More words.", AuthorID: int64Ptr(2), CreatedAt: created(2)},
			{ID: 3, Title: "Orphan Post", Content: "Nobody wrote this.", AuthorID: nil, CreatedAt: created(3)},
		},
		Comments: []core.Comment{
			{ID: 1, PostID: 1, AuthorID: int64Ptr(2), CreatedAt: created(5)},
			{ID: 2, PostID: 1, AuthorID: int64Ptr(1), CreatedAt: created(6)},
		},
	}
	if err := store.LoadDataset(context.Background(), ds); err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}

	server := NewServer(search.NewService(store), store, 30)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	ts := httptest.NewServer(CorsMiddleware(mux))
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleSearch(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?q=post&sort=id&order=asc")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Count != 3 {
		t.Errorf("Count = %d, want 3", result.Count)
	}
	if result.Sort != "id" || result.Order != "asc" {
		t.Errorf("Echoed ordering = %s %s, want id asc", result.Sort, result.Order)
	}
	if len(result.Posts) != 3 {
		t.Fatalf("Got %d posts, want 3", len(result.Posts))
	}
	if result.Posts[0].ID != 1 || result.Posts[0].AuthorName != "Alice" {
		t.Errorf("First post = %+v", result.Posts[0])
	}
	if result.Posts[0].CommentCount != 2 {
		t.Errorf("First post comment count = %d, want 2", result.Posts[0].CommentCount)
	}
	if result.Posts[2].AuthorName != core.UnknownAuthor {
		t.Errorf("Orphan post author = %q, want %q", result.Posts[2].AuthorName, core.UnknownAuthor)
	}
}

func TestHandleSearchDefaultsNewestFirst(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Sort != "created_at" || result.Order != "desc" {
		t.Errorf("Default ordering = %s %s, want created_at desc", result.Sort, result.Order)
	}
	if len(result.Posts) != 3 || result.Posts[0].ID != 3 {
		t.Errorf("Expected newest post first, got %+v", result.Posts)
	}
}

func TestHandleSearchExplicitTakeZero(t *testing.T) {
	ts := newTestServer(t)

	// Asking for a zero-sized page yields an empty page, not the default
	// page size.
	resp, err := http.Get(ts.URL + "/api/search?take=0")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Count != 0 || len(result.Posts) != 0 {
		t.Errorf("Got %d posts for take=0, want 0", len(result.Posts))
	}
	if result.Take != 0 {
		t.Errorf("Echoed take = %d, want 0", result.Take)
	}
}

func TestHandleSearchRejectsUnknownSort(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?sort=popularity")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "Invalid sort field" {
		t.Errorf("Error = %q, want %q", errResp.Error, "Invalid sort field")
	}
}

func TestHandleStats(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var stats map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats["total_posts"] != float64(3) {
		t.Errorf("total_posts = %v, want 3", stats["total_posts"])
	}
	if stats["total_comments"] != float64(2) {
		t.Errorf("total_comments = %v, want 2", stats["total_comments"])
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Status = %q, want ok", health.Status)
	}
	if health.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestCorsHeaders(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest("OPTIONS", ts.URL+"/api/search", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", resp.StatusCode)
	}
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", origin)
	}
}

func TestParamsOrderEcho(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?skip=1&take=1&sort=id&order=asc")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Skip != 1 || result.Take != 1 {
		t.Errorf("Echoed window = (%d, %d), want (1, 1)", result.Skip, result.Take)
	}
	if len(result.Posts) != 1 || result.Posts[0].ID != 2 {
		t.Errorf("Windowed posts = %+v, want only post 2", result.Posts)
	}
	if !strings.EqualFold(result.Order, "asc") {
		t.Errorf("Order = %q, want asc", result.Order)
	}
}
