package search

import (
	"net/url"
	"strconv"

	"github.com/blogdex/blogdex/pkg/core"
)

// Params represents all parameters for a paged search request as accepted
// by the HTTP API.
type Params struct {
	// Query is the free-text filter. Blank means no filtering.
	Query string

	// Skip is the number of leading rows to drop. Negative values behave
	// like zero.
	Skip int

	// Take is the page size.
	Take int

	// Sort is the primary ordering field, always one of the closed
	// supported set.
	Sort core.SortField

	// Descending is the ordering direction. Defaults to true so that
	// unqualified requests list newest posts first.
	Descending bool
}

// ParseSearchParams parses HTTP query parameters into a Params struct.
// Missing or malformed numeric parameters fall back to their defaults;
// an unsupported sort field is an error, matching the engine's closed-set
// contract.
//
// Supported parameters:
//   - q: free-text query
//   - skip: number of rows to skip (non-negative integer, defaults to 0)
//   - take: page size; defaults to defaultTake when absent or malformed.
//     An explicit value <= 0 is kept, so the engine answers with an empty
//     page rather than the default one.
//   - sort: id | title | comment_count | created_at (defaults to created_at)
//   - order: asc | desc (defaults to desc)
func ParseSearchParams(queryParams url.Values, defaultTake int) (Params, error) {
	params := Params{
		Take:       defaultTake,
		Sort:       core.SortByCreatedAt,
		Descending: true,
	}

	if q := queryParams["q"]; len(q) > 0 {
		params.Query = q[0]
	}

	if skipStr := queryParams["skip"]; len(skipStr) > 0 && skipStr[0] != "" {
		if parsed, err := strconv.Atoi(skipStr[0]); err == nil && parsed > 0 {
			params.Skip = parsed
		}
	}

	if takeStr := queryParams["take"]; len(takeStr) > 0 && takeStr[0] != "" {
		if parsed, err := strconv.Atoi(takeStr[0]); err == nil {
			params.Take = parsed
		}
	}

	if sortStr := queryParams["sort"]; len(sortStr) > 0 && sortStr[0] != "" {
		field, err := core.ParseSortField(sortStr[0])
		if err != nil {
			return params, err
		}
		params.Sort = field
	}

	if orderStr := queryParams["order"]; len(orderStr) > 0 && orderStr[0] == "asc" {
		params.Descending = false
	}

	return params, nil
}
