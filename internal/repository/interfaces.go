package repository

import (
	"context"

	"vlog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetAll(ctx context.Context) ([]model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// GetAll returns every post with author username and engagement counts
	// attached, newest first.
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByAuthor(ctx context.Context, authorID int64) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	// Delete removes the post and every like and comment referencing it in
	// one transaction, the post row last.
	Delete(ctx context.Context, postID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	// GetByPost returns all comments of a post with author usernames,
	// ordered ascending by creation time.
	GetByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	// GetAll returns every comment with author username and post title,
	// newest first.
	GetAll(ctx context.Context) ([]model.Comment, error)
	// Delete removes a single comment. Replies are left untouched.
	Delete(ctx context.Context, commentID int64) error
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type LikeRepository interface {
	// Create inserts a like, failing with model.ErrAlreadyLiked when the
	// (user, post) pair already exists.
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, userID, postID int64) error
	CountByPost(ctx context.Context, postID int64) (int, error)
	PostIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}
