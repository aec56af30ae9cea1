package core

import "fmt"

// SortField identifies one of the closed set of post attributes a search
// can be ordered by. Anything outside the set is rejected before a store
// query is issued; there is no silent fallback to a default field.
type SortField string

const (
	SortByID           SortField = "id"
	SortByTitle        SortField = "title"
	SortByCommentCount SortField = "comment_count"
	SortByCreatedAt    SortField = "created_at"
)

// SortFields lists every supported sort field, in display order.
func SortFields() []SortField {
	return []SortField{SortByID, SortByTitle, SortByCommentCount, SortByCreatedAt}
}

// Validate returns a validation error when f is not one of the supported
// sort fields.
func (f SortField) Validate() error {
	switch f {
	case SortByID, SortByTitle, SortByCommentCount, SortByCreatedAt:
		return nil
	}
	return fmt.Errorf("unsupported sort field %q (supported: id, title, comment_count, created_at)", string(f))
}

// ParseSortField converts user input into a SortField. The empty string
// maps to SortByCreatedAt, the default ordering of the search surface.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCreatedAt, nil
	}
	f := SortField(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// SummaryQuery is the full description of a search pushed down to the
// store: filter, ordering and window. It is built by the search service
// after validation, so stores may assume Sort is valid and Offset/Limit are
// non-negative.
type SummaryQuery struct {
	// Query is the trimmed free-text filter. Empty means no filtering.
	Query string

	// Sort is the primary ordering field. Stores always append the post id
	// ascending as a secondary key so the resulting order is total.
	Sort       SortField
	Descending bool

	Offset int
	Limit  int
}
