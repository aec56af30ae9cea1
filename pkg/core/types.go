package core

import "time"

// User is an author of posts and comments. Users are owned by the store;
// blogdex never creates or mutates them outside the loader.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post is a single blog entry. AuthorID may be nil when the author is
// unknown or has been removed.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	AuthorID  *int64    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to exactly one post. AuthorID may be nil.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  *int64    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PostSummary is the flattened read model returned by search operations.
// It is derived entirely inside the store query and never persisted.
//
// Excerpt is the post content truncated to ExcerptLength code points with a
// "..." suffix when truncated, or the empty string when the post has no
// content. AuthorName falls back to "Unknown" when the post has no author
// or the author has no name. CommentCount is the exact count of associated
// comments.
type PostSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	AuthorName   string    `json:"author_name"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostReport is one line of the streaming report: a per-post aggregate of
// author, comment count and the most recent commenter.
// LatestCommentAuthor is "None" when the post has no comments and "Unknown"
// when the latest comment exists but its author is absent or unnamed.
type PostReport struct {
	ID                  int64
	AuthorName          string
	CommentCount        int64
	LatestCommentAuthor string
}

// ExcerptLength is the maximum number of code points kept from a post's
// content when building PostSummary.Excerpt.
const ExcerptLength = 200

// Defaults substituted during projection when associated data is absent.
const (
	UnknownAuthor = "Unknown"
	NoCommenter   = "None"
)
