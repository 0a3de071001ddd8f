package model

import (
	"errors"
	"sort"
	"time"
)

// Post categories. Anything outside this set normalizes to General.
const (
	CategoryGeneral     = "General"
	CategoryWebDesign   = "Web Design"
	CategoryDevelopment = "Development"
	CategoryDatabase    = "Database"
)

var validCategories = map[string]bool{
	CategoryGeneral:     true,
	CategoryWebDesign:   true,
	CategoryDevelopment: true,
	CategoryDatabase:    true,
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c string) bool {
	return validCategories[c]
}

// NormalizeCategory maps an absent or unknown category to General.
func NormalizeCategory(c string) string {
	if validCategories[c] {
		return c
	}
	return CategoryGeneral
}

// Post represents a vlog post with its metadata.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Image     *string   `db:"image" json:"image,omitempty"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not columns of the posts table)
	Author       *UserSummary `json:"author,omitempty"`
	LikeCount    int          `db:"like_count" json:"like_count"`
	CommentCount int          `db:"comment_count" json:"comment_count"`
}

// CreatePostRequest carries the fields of a new post. Image holds the opaque
// storage key of an already-uploaded file, if any.
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Image    *string `json:"image,omitempty"`
}

func (r *CreatePostRequest) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.Content == "" {
		return ErrPostContentRequired
	}
	return nil
}

// UpdatePostRequest carries replacement fields for an existing post.
// Category and Image are applied only when present.
type UpdatePostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Image    *string `json:"image,omitempty"`
}

func (r *UpdatePostRequest) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.Content == "" {
		return ErrPostContentRequired
	}
	return nil
}

// SortByPopularity orders posts by like count descending, newest first among
// equally liked posts. The sort is stable, so the ordering is deterministic
// for identical (count, timestamp) pairs.
func SortByPopularity(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].LikeCount != posts[j].LikeCount {
			return posts[i].LikeCount > posts[j].LikeCount
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// Post errors
var (
	ErrPostNotFound        = errors.New("post not found")
	ErrNotPostOwner        = errors.New("not the owner of this post")
	ErrTitleRequired       = errors.New("post title is required")
	ErrPostContentRequired = errors.New("post content is required")
)
