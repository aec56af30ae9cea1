package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/blogdex/blogdex/pkg/log"
	"github.com/blogdex/blogdex/pkg/search"
	"github.com/blogdex/blogdex/pkg/storage"
)

type Server struct {
	service *search.Service
	store   *storage.Store

	mu          sync.RWMutex
	defaultTake int
}

func NewServer(service *search.Service, store *storage.Store, defaultTake int) *Server {
	if defaultTake <= 0 {
		defaultTake = 30
	}
	return &Server{
		service:     service,
		store:       store,
		defaultTake: defaultTake,
	}
}

func logger() *log.Logger {
	return log.ForComponent("api")
}

// SetDefaultTake updates the default page size. Called on config reload.
func (s *Server) SetDefaultTake(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.defaultTake = n
	s.mu.Unlock()
}

func (s *Server) defaultTakeValue() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultTake
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger().Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
