package api

import (
	"time"

	"github.com/blogdex/blogdex/pkg/core"
)

type SearchResponse struct {
	Query string             `json:"query"`
	Posts []core.PostSummary `json:"posts"`
	Count int                `json:"count"`
	Skip  int                `json:"skip"`
	Take  int                `json:"take"`
	Sort  string             `json:"sort"`
	Order string             `json:"order"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
