package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vlog/internal/model"
)

func ptr(v int64) *int64 { return &v }

// =============================================================================
// THREAD BUILDING TESTS
// =============================================================================

func TestBuildThread_NestsRepliesUnderParents(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	comments := []model.Comment{
		{ID: 1, Content: "root one", PostID: 7, CreatedAt: base},
		{ID: 2, Content: "reply to one", PostID: 7, ParentID: ptr(1), CreatedAt: base.Add(time.Minute)},
		{ID: 3, Content: "root two", PostID: 7, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, Content: "nested reply", PostID: 7, ParentID: ptr(2), CreatedAt: base.Add(3 * time.Minute)},
	}

	roots := BuildThread(comments)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 3 {
		t.Errorf("root ids = [%d, %d], want [1, 3]", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].ID != 2 {
		t.Fatalf("comment 1 should have reply 2")
	}
	if len(roots[0].Replies[0].Replies) != 1 || roots[0].Replies[0].Replies[0].ID != 4 {
		t.Errorf("comment 2 should have nested reply 4")
	}
}

func TestBuildThread_SiblingsKeepCreationOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	comments := []model.Comment{
		{ID: 1, PostID: 7, CreatedAt: base},
		{ID: 2, PostID: 7, ParentID: ptr(1), CreatedAt: base.Add(time.Minute)},
		{ID: 3, PostID: 7, ParentID: ptr(1), CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, PostID: 7, ParentID: ptr(1), CreatedAt: base.Add(3 * time.Minute)},
	}

	roots := BuildThread(comments)

	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	replies := roots[0].Replies
	if len(replies) != 3 {
		t.Fatalf("replies = %d, want 3", len(replies))
	}
	for i, wantID := range []int64{2, 3, 4} {
		if replies[i].ID != wantID {
			t.Errorf("replies[%d].ID = %d, want %d", i, replies[i].ID, wantID)
		}
	}
}

// A reply whose parent is missing from the batch (deleted, or attached to a
// different post) surfaces as a root rather than disappearing.
func TestBuildThread_OrphanedReplyBecomesRoot(t *testing.T) {
	comments := []model.Comment{
		{ID: 5, PostID: 7},
		{ID: 6, PostID: 7, ParentID: ptr(999)},
	}

	roots := BuildThread(comments)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if roots[1].ID != 6 {
		t.Errorf("orphan should be promoted to root, got root ids [%d, %d]", roots[0].ID, roots[1].ID)
	}
	if roots[1].ParentID == nil || *roots[1].ParentID != 999 {
		t.Error("orphan keeps its dangling parent reference")
	}
}

func TestBuildThread_Empty(t *testing.T) {
	roots := BuildThread(nil)
	if roots == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(roots) != 0 {
		t.Errorf("roots = %d, want 0", len(roots))
	}
}

func TestBuildThread_EveryCommentAppearsExactlyOnce(t *testing.T) {
	comments := []model.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(1)},
		{ID: 4, ParentID: ptr(3)},
		{ID: 5, ParentID: ptr(42)}, // orphan
		{ID: 6},
	}

	roots := BuildThread(comments)

	seen := map[int64]int{}
	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Replies)
		}
	}
	walk(roots)

	if len(seen) != len(comments) {
		t.Fatalf("forest holds %d distinct comments, want %d", len(seen), len(comments))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("comment %d appears %d times, want 1", id, count)
		}
	}
}

// =============================================================================
// CREATE TESTS
// =============================================================================

func newCommentService(commentRepo *mockCommentRepository, postRepo *mockPostRepository, userRepo *mockUserRepository) *CommentService {
	if commentRepo == nil {
		commentRepo = &mockCommentRepository{}
	}
	if postRepo == nil {
		postRepo = &mockPostRepository{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepository{}
	}
	return NewCommentService(commentRepo, postRepo, userRepo)
}

func TestCommentService_Create_Success(t *testing.T) {
	commentRepo := &mockCommentRepository{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			comment.ID = 10
			comment.CreatedAt = time.Now()
			return nil
		},
	}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "alice"}, nil
		},
	}
	svc := newCommentService(commentRepo, postRepo, userRepo)

	comment, err := svc.Create(context.Background(), 3, model.CreateCommentRequest{
		Content: "nice post",
		PostID:  7,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if comment.ID != 10 {
		t.Errorf("comment.ID = %d, want 10", comment.ID)
	}
	if comment.Author == nil || comment.Author.Username != "alice" {
		t.Errorf("author = %+v, want alice", comment.Author)
	}
}

func TestCommentService_Create_ContentTooLong(t *testing.T) {
	svc := newCommentService(nil, nil, nil)

	_, err := svc.Create(context.Background(), 3, model.CreateCommentRequest{
		Content: strings.Repeat("a", model.MaxCommentLength+1),
		PostID:  7,
	})
	if !errors.Is(err, model.ErrContentTooLong) {
		t.Errorf("err = %v, want ErrContentTooLong", err)
	}
}

func TestCommentService_Create_ContentAtLimitAccepted(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	svc := newCommentService(nil, postRepo, nil)

	_, err := svc.Create(context.Background(), 3, model.CreateCommentRequest{
		Content: strings.Repeat("a", model.MaxCommentLength),
		PostID:  7,
	})
	if err != nil {
		t.Errorf("500-char comment should be accepted, got: %v", err)
	}
}

func TestCommentService_Create_PostNotFound(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return false, nil },
	}
	svc := newCommentService(nil, postRepo, nil)

	_, err := svc.Create(context.Background(), 3, model.CreateCommentRequest{
		Content: "hello",
		PostID:  999,
	})
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestCommentService_Create_ParentNotFound(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return nil, model.ErrCommentNotFound
		},
	}
	svc := newCommentService(commentRepo, postRepo, nil)

	_, err := svc.Create(context.Background(), 3, model.CreateCommentRequest{
		Content: "reply",
		PostID:  7,
		Parent:  ptr(404),
	})
	if !errors.Is(err, model.ErrParentCommentNotFound) {
		t.Errorf("err = %v, want ErrParentCommentNotFound", err)
	}
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestCommentService_Delete_ByOwner(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, AuthorID: 3, PostID: 7}, nil
		},
	}
	svc := newCommentService(commentRepo, nil, nil)

	err := svc.Delete(context.Background(), model.Principal{UserID: 3, Role: model.RoleUser}, 10)
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(commentRepo.deleteCalls) != 1 || commentRepo.deleteCalls[0] != 10 {
		t.Errorf("deleteCalls = %v, want [10]", commentRepo.deleteCalls)
	}
}

func TestCommentService_Delete_ByAdmin(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, AuthorID: 3, PostID: 7}, nil
		},
	}
	svc := newCommentService(commentRepo, nil, nil)

	err := svc.Delete(context.Background(), model.Principal{UserID: 99, Role: model.RoleAdmin}, 10)
	if err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func TestCommentService_Delete_ByStrangerForbidden(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, AuthorID: 3, PostID: 7}, nil
		},
	}
	svc := newCommentService(commentRepo, nil, nil)

	err := svc.Delete(context.Background(), model.Principal{UserID: 4, Role: model.RoleUser}, 10)
	if !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("err = %v, want ErrNotCommentOwner", err)
	}
	if len(commentRepo.deleteCalls) != 0 {
		t.Error("delete should not be called when authorization fails")
	}
}

func TestCommentService_Delete_NotFound(t *testing.T) {
	svc := newCommentService(nil, nil, nil)

	err := svc.Delete(context.Background(), model.Principal{UserID: 3, Role: model.RoleUser}, 404)
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("err = %v, want ErrCommentNotFound", err)
	}
}

// =============================================================================
// THREAD LISTING TESTS
// =============================================================================

func TestCommentService_GetThread_UnknownPostYieldsEmptyForest(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByPostFn: func(ctx context.Context, postID int64) ([]model.Comment, error) {
			return nil, nil
		},
	}
	svc := newCommentService(commentRepo, nil, nil)

	thread, err := svc.GetThread(context.Background(), 999)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if thread == nil || len(thread) != 0 {
		t.Errorf("thread = %v, want empty forest", thread)
	}
}
