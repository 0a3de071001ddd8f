package service

import (
	"context"
	"fmt"
	"log"

	"vlog/internal/model"
	"vlog/internal/repository"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Like records that a user liked a post. Liking twice is a conflict, decided
// by the store's uniqueness constraint rather than a read-then-write check,
// so concurrent doubles cannot slip through.
func (s *LikeService) Like(ctx context.Context, userID, postID int64) (*model.Like, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	like := &model.Like{UserID: userID, PostID: postID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	like.User = ResolveAuthor(ctx, userID, s.userRepo.GetByID)

	log.Printf("[LikeService] User %d liked post %d", userID, postID)
	return like, nil
}

// Unlike removes the user's like from a post. A hard delete; unliking a post
// that was never liked is NotFound.
func (s *LikeService) Unlike(ctx context.Context, userID, postID int64) error {
	if err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
		return err
	}

	log.Printf("[LikeService] User %d unliked post %d", userID, postID)
	return nil
}

// Count returns a post's like count, computed from the like collection.
func (s *LikeService) Count(ctx context.Context, postID int64) (int, error) {
	return s.likeRepo.CountByPost(ctx, postID)
}

// LikedPostIDs returns the ids of every post the user has liked.
func (s *LikeService) LikedPostIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.likeRepo.PostIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
