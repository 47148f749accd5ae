package models

import "time"

// Blog is a post. Slug is unique; it is derived from the title and gets a
// timestamp suffix when the derived value is already taken.
type Blog struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	Published     bool      `json:"published"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BlogRequest is the admin create/update payload. Slug is optional and
// derived from the title when absent.
type BlogRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt" binding:"required"`
	Slug          string   `json:"slug,omitempty"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Published     bool     `json:"published"`
	Tags          []string `json:"tags"`
}

// BlogPage is the paginated blog listing.
type BlogPage struct {
	Blogs      []*Blog `json:"blogs"`
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}
