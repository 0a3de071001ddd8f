package service

import (
	"context"

	"vlog/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on the repository INTERFACES, so tests swap in mocks
// with per-test behavior instead of hitting a real database. Each mock method
// delegates to an optional fn field and falls back to a sensible zero answer.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	getAllFn           func(ctx context.Context) ([]model.User, error)

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn      func(ctx context.Context, post *model.Post) error
	getByIDFn     func(ctx context.Context, postID int64) (*model.Post, error)
	getAllFn      func(ctx context.Context) ([]model.Post, error)
	getByAuthorFn func(ctx context.Context, authorID int64) ([]model.Post, error)
	updateFn      func(ctx context.Context, post *model.Post) error
	deleteFn      func(ctx context.Context, postID int64) error
	existsFn      func(ctx context.Context, postID int64) (bool, error)

	deleteCalls []int64
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepository) GetByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	if m.getByAuthorFn != nil {
		return m.getByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	m.deleteCalls = append(m.deleteCalls, postID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return false, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, commentID int64) (*model.Comment, error)
	getByPostFn   func(ctx context.Context, postID int64) ([]model.Comment, error)
	getAllFn      func(ctx context.Context) ([]model.Comment, error)
	deleteFn      func(ctx context.Context, commentID int64) error
	countByPostFn func(ctx context.Context, postID int64) (int, error)

	deleteCalls []int64
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) GetByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.getByPostFn != nil {
		return m.getByPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepository) GetAll(ctx context.Context) ([]model.Comment, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	m.deleteCalls = append(m.deleteCalls, commentID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

func (m *mockCommentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 0, nil
}

type mockLikeRepository struct {
	createFn        func(ctx context.Context, like *model.Like) error
	deleteFn        func(ctx context.Context, userID, postID int64) error
	countByPostFn   func(ctx context.Context, postID int64) (int, error)
	postIDsByUserFn func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockLikeRepository) Create(ctx context.Context, like *model.Like) error {
	if m.createFn != nil {
		return m.createFn(ctx, like)
	}
	return nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, userID, postID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockLikeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockLikeRepository) PostIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	if m.postIDsByUserFn != nil {
		return m.postIDsByUserFn(ctx, userID)
	}
	return nil, nil
}
