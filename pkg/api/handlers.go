package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/blogdex/blogdex/pkg/search"
	"github.com/blogdex/blogdex/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseSearchParams(r.URL.Query(), s.defaultTakeValue())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid sort field", err.Error())
		return
	}

	posts, err := s.service.SearchPaged(r.Context(), params.Query, params.Skip, params.Take, params.Sort, params.Descending)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing sensible to write.
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	order := "desc"
	if !params.Descending {
		order = "asc"
	}

	response := SearchResponse{
		Query: params.Query,
		Posts: posts,
		Count: len(posts),
		Skip:  params.Skip,
		Take:  params.Take,
		Sort:  string(params.Sort),
		Order: order,
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to get stats", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
