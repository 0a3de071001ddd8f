package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vlog/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The UNIQUE(user_id, post_id) constraint decides
// races: the loser gets model.ErrAlreadyLiked, never a silent duplicate.
func (r *likeRepository) Create(ctx context.Context, l *model.Like) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, l.UserID, l.PostID).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.ErrAlreadyLiked
		}
		return storeErr("insert like", err)
	}
	return nil
}

// Delete removes a like. A hard delete, not a soft flag.
func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return storeErr("delete like", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete like rows affected", err)
	}
	if rows == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

// CountByPost counts a post's likes.
func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, storeErr("count likes", err)
	}
	return count, nil
}

// PostIDsByUser returns the ids of every post the user has liked, most
// recent like first.
func (r *likeRepository) PostIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT post_id FROM likes WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, storeErr("get liked post ids", err)
	}
	return ids, nil
}
