package service

import (
	"context"
	"fmt"
	"log"

	"vlog/internal/model"
	"vlog/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// Create stores a new post for the author. An absent or unknown category
// falls back to General.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
		Image:    req.Image,
		Category: model.NormalizeCategory(req.Category),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	post.Author = ResolveAuthor(ctx, userID, s.userRepo.GetByID)

	log.Printf("[PostService] User %d created post %d", userID, post.ID)
	return post, nil
}

// GetByID retrieves a single post with its engagement counts. The counts are
// taken from the like and comment collections on every read; nothing is
// denormalized onto the post row.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	commentCount, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	post.LikeCount = likeCount
	post.CommentCount = commentCount
	return post, nil
}

// List returns all posts with counts attached, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.GetAll(ctx)
}

// ListByAuthor returns one user's posts with counts attached, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	return s.postRepo.GetByAuthor(ctx, authorID)
}

// Popular returns all posts ranked by like count descending; among equally
// liked posts the newest comes first. Counts come from the store, the
// ordering is decided here so it stays deterministic and testable.
func (s *PostService) Popular(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	model.SortByPopularity(posts)
	return posts, nil
}

// Update replaces a post's mutable fields. Only the owner or an admin may
// update. Category is applied only when a valid one is sent; the image is
// replaced only when a new upload arrived.
func (s *PostService) Update(ctx context.Context, actor model.Principal, postID int64, req model.UpdatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !model.CanModify(actor.UserID, post.AuthorID, actor.Role) {
		return nil, model.ErrNotPostOwner
	}

	post.Title = req.Title
	post.Content = req.Content
	if req.Category != "" {
		post.Category = model.NormalizeCategory(req.Category)
	}
	if req.Image != nil {
		post.Image = req.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d updated post %d", actor.UserID, postID)
	return post, nil
}

// Delete removes a post and cascades over its likes and comments so no
// record is left referencing a missing post. Only the owner or an admin may
// delete; existence is checked before authorization, so an absent post is
// NotFound even for strangers.
func (s *PostService) Delete(ctx context.Context, actor model.Principal, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !model.CanModify(actor.UserID, post.AuthorID, actor.Role) {
		return model.ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	log.Printf("[PostService] User %d deleted post %d", actor.UserID, postID)
	return nil
}
