package service

import (
	"context"

	"vlog/internal/model"
)

// UserLookup resolves a user id to the full record. It matches the signature
// of UserRepository.GetByID so repositories can be passed in directly.
type UserLookup func(ctx context.Context, id int64) (*model.User, error)

// ResolveAuthor projects the referenced user's public summary onto a record.
// The credential hash never leaves the lookup. A failed lookup yields nil so
// the record is returned unannotated instead of failing the whole read.
func ResolveAuthor(ctx context.Context, userID int64, lookup UserLookup) *model.UserSummary {
	user, err := lookup(ctx, userID)
	if err != nil {
		return nil
	}
	return user.Summary()
}
