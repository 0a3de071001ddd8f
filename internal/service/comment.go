package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vlog/internal/model"
	"vlog/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create adds a comment to a post. The post must exist, and so must the
// parent comment when one is referenced. The parent is not required to belong
// to the same post: a cross-post parent is simply never found when the
// thread is rebuilt, so the comment surfaces as a root there.
func (s *CommentService) Create(ctx context.Context, userID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	if req.Parent != nil {
		if _, err := s.commentRepo.GetByID(ctx, *req.Parent); err != nil {
			if errors.Is(err, model.ErrCommentNotFound) {
				return nil, model.ErrParentCommentNotFound
			}
			return nil, err
		}
	}

	comment := &model.Comment{
		Content:  req.Content,
		AuthorID: userID,
		PostID:   req.PostID,
		ParentID: req.Parent,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = ResolveAuthor(ctx, userID, s.userRepo.GetByID)

	log.Printf("[CommentService] User %d commented on post %d", userID, req.PostID)
	return comment, nil
}

// Delete removes a comment. Only the author or an admin may delete. Replies
// are left in place with their parent reference now dangling; the thread
// builder turns them into roots. Worth revisiting: nulling the parent field
// or cascading the replies would avoid the dangling ids.
func (s *CommentService) Delete(ctx context.Context, actor model.Principal, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !model.CanModify(actor.UserID, comment.AuthorID, actor.Role) {
		return model.ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	log.Printf("[CommentService] User %d deleted comment %d from post %d", actor.UserID, commentID, comment.PostID)
	return nil
}

// GetThread returns a post's comments as a nested reply forest. An unknown
// post id yields an empty forest, same as a post without comments.
func (s *CommentService) GetThread(ctx context.Context, postID int64) ([]*model.CommentNode, error) {
	comments, err := s.commentRepo.GetByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return BuildThread(comments), nil
}

// GetAll returns every comment across all posts, newest first. Admin only.
func (s *CommentService) GetAll(ctx context.Context) ([]model.Comment, error) {
	return s.commentRepo.GetAll(ctx)
}

// BuildThread assembles a flat, creation-ordered comment list into a forest
// of reply trees. Two passes: index every comment by id, then attach each one
// under its parent. Appending in input order keeps siblings sorted by
// creation time at every depth with no per-level sort.
//
// A comment whose parent id is absent from the batch — parent deleted, or on
// another post — becomes a root rather than an error node. That is the
// intended degradation for orphaned replies, not a lost record.
func BuildThread(comments []model.Comment) []*model.CommentNode {
	nodes := make(map[int64]*model.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &model.CommentNode{
			Comment: comments[i],
			Replies: []*model.CommentNode{},
		}
	}

	roots := []*model.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if parentID := comments[i].ParentID; parentID != nil {
			if parent, ok := nodes[*parentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
