package model

import (
	"errors"
	"time"
)

// Like records that a user liked a post. At most one Like may exist per
// (user, post) pair; the store enforces this with a uniqueness constraint.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	User *UserSummary `json:"user,omitempty"`
}

// LikeRequest is the body of like and unlike calls.
type LikeRequest struct {
	PostID int64 `json:"post_id"`
}

// Like errors
var (
	ErrAlreadyLiked = errors.New("post already liked")
	ErrLikeNotFound = errors.New("like not found")
)
