package model

import (
	"errors"
	"time"
)

// MaxCommentLength caps comment content.
const MaxCommentLength = 500

// Comment is a flat, parent-referencing comment record. ParentID is a lookup
// relation within the same post, not an ownership edge: deleting a parent
// leaves its replies in place with a dangling reference.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	AuthorID  int64     `db:"author_id" json:"-"`
	PostID    int64     `db:"post_id" json:"post_id"`
	ParentID  *int64    `db:"parent_id" json:"parent,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	Author    *UserSummary `json:"author,omitempty"`
	PostTitle *string      `db:"post_title" json:"post_title,omitempty"` // admin listing only
}

// CommentNode is a comment carrying its ordered replies, as produced by the
// threaded listing.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
	PostID  int64  `json:"post_id"`
	Parent  *int64 `json:"parent,omitempty"`
}

func (r *CreateCommentRequest) Validate() error {
	if r.Content == "" {
		return ErrContentRequired
	}
	if len(r.Content) > MaxCommentLength {
		return ErrContentTooLong
	}
	if r.PostID == 0 {
		return ErrPostIDRequired
	}
	return nil
}

// Comment errors
var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrNotCommentOwner       = errors.New("not the owner of this comment")
	ErrContentRequired       = errors.New("comment content is required")
	ErrContentTooLong        = errors.New("comment content too long")
	ErrPostIDRequired        = errors.New("post id is required")
)
