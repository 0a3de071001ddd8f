package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"vlog/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO posts (title, content, author_id, image, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.Title, p.Content, p.AuthorID, p.Image, p.Category).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return storeErr("insert post", err)
	}
	return nil
}

// postRow scans a post joined with its author's username and, on list
// queries, the grouped engagement counts.
type postRow struct {
	ID             int64     `db:"id"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	AuthorID       int64     `db:"author_id"`
	Image          *string   `db:"image"`
	Category       string    `db:"category"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorUsername string    `db:"author_username"`
	LikeCount      int       `db:"like_count"`
	CommentCount   int       `db:"comment_count"`
}

func (row postRow) toPost() model.Post {
	return model.Post{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		AuthorID:  row.AuthorID,
		Image:     row.Image,
		Category:  row.Category,
		CreatedAt: row.CreatedAt,
		Author: &model.UserSummary{
			ID:       row.AuthorID,
			Username: row.AuthorUsername,
		},
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
	}
}

// GetByID retrieves a single post with its author's username. Engagement
// counts are not attached here; the service layer counts on read.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.title, p.content, p.author_id, p.image, p.category, p.created_at,
		       u.username AS author_username
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, storeErr("get post", err)
	}
	post := row.toPost()
	return &post, nil
}

// listQuery joins authors and attaches like/comment counts with grouped
// subqueries. One query for the whole listing instead of two count queries
// per post; the results are identical to counting per post on read.
const listQuery = `
	SELECT p.id, p.title, p.content, p.author_id, p.image, p.category, p.created_at,
	       u.username AS author_username,
	       COALESCE(l.cnt, 0) AS like_count,
	       COALESCE(c.cnt, 0) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM likes GROUP BY post_id) l ON l.post_id = p.id
	LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM comments GROUP BY post_id) c ON c.post_id = p.id
`

// GetAll returns every post with counts attached, newest first.
func (r *postRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, listQuery+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, storeErr("get all posts", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// GetByAuthor returns one author's posts with counts attached, newest first.
func (r *postRepository) GetByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []postRow
	err := r.db.SelectContext(ctx, &rows,
		listQuery+` WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC`, authorID)
	if err != nil {
		return nil, storeErr("get posts by author", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// Update replaces the mutable fields of a post.
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE posts
		SET title = $1, content = $2, category = $3, image = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query, p.Title, p.Content, p.Category, p.Image, p.ID)
	if err != nil {
		return storeErr("update post", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("update post rows affected", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Delete removes a post and all likes and comments referencing it in one
// transaction. The post row goes last so a concurrent reader never sees a
// like or comment pointing at a missing post.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1`, postID); err != nil {
		return storeErr("delete likes of post", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return storeErr("delete comments of post", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return storeErr("delete post", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete post rows affected", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}

// Exists checks if a post exists.
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, storeErr("check post exists", err)
	}
	return exists, nil
}
