package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"vlog/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment. The parent reference is stored as given;
// referential integrity is checked by the service, not by the schema.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO comments (content, author_id, post_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.Content, c.AuthorID, c.PostID, c.ParentID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return storeErr("insert comment", err)
	}
	return nil
}

// GetByID retrieves a single comment.
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, content, author_id, post_id, parent_id, created_at
		FROM comments
		WHERE id = $1
	`
	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, storeErr("get comment", err)
	}
	return &c, nil
}

type commentRow struct {
	ID             int64     `db:"id"`
	Content        string    `db:"content"`
	AuthorID       int64     `db:"author_id"`
	PostID         int64     `db:"post_id"`
	ParentID       *int64    `db:"parent_id"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorUsername string    `db:"author_username"`
	PostTitle      *string   `db:"post_title"`
}

func (row commentRow) toComment() model.Comment {
	return model.Comment{
		ID:        row.ID,
		Content:   row.Content,
		AuthorID:  row.AuthorID,
		PostID:    row.PostID,
		ParentID:  row.ParentID,
		CreatedAt: row.CreatedAt,
		Author: &model.UserSummary{
			ID:       row.AuthorID,
			Username: row.AuthorUsername,
		},
		PostTitle: row.PostTitle,
	}
}

// GetByPost returns all comments of a post with author usernames, ordered
// ascending by creation time. The id tie-break keeps same-timestamp siblings
// in insertion order, so the thread builder sees a deterministic sequence.
func (r *commentRepository) GetByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.content, c.author_id, c.post_id, c.parent_id, c.created_at,
		       u.username AS author_username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	var crows []commentRow
	if err := r.db.SelectContext(ctx, &crows, query, postID); err != nil {
		return nil, storeErr("get comments by post", err)
	}

	comments := make([]model.Comment, len(crows))
	for i, row := range crows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

// GetAll returns every comment with author username and post title, newest
// first. Admin listing only.
func (r *commentRepository) GetAll(ctx context.Context) ([]model.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.content, c.author_id, c.post_id, c.parent_id, c.created_at,
		       u.username AS author_username,
		       p.title AS post_title
		FROM comments c
		JOIN users u ON u.id = c.author_id
		JOIN posts p ON p.id = c.post_id
		ORDER BY c.created_at DESC, c.id DESC
	`
	var crows []commentRow
	if err := r.db.SelectContext(ctx, &crows, query); err != nil {
		return nil, storeErr("get all comments", err)
	}

	comments := make([]model.Comment, len(crows))
	for i, row := range crows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

// Delete removes a single comment. Replies keep their parent reference; the
// thread builder surfaces them as roots.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return storeErr("delete comment", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete comment rows affected", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// CountByPost counts a post's comments.
func (r *commentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, storeErr("count comments", err)
	}
	return count, nil
}
