package domain

import "time"

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// Post is a blog entry.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Summary    string     `json:"summary"`
	Body       string     `json:"body"`
	CategoryID *string    `json:"category_id,omitempty"`
	AuthorID   string     `json:"author_id"`
	Status     PostStatus `json:"status"`
	Views      int64      `json:"views"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Published reports whether the post is publicly visible.
func (p *Post) Published() bool {
	return p.Status == PostStatusPublished
}
