package service

import (
	"context"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// AccessService decides what a caller may do with a category.
type AccessService struct {
	shares *repository.ShareRepository
}

func NewAccessService(shares *repository.ShareRepository) *AccessService {
	return &AccessService{shares: shares}
}

// Resolve returns the caller's permission on a category. user is nil for
// anonymous visitors. Checks run in order, first match wins:
//
//  1. the owner always gets write, whatever grants exist;
//  2. an explicit grant gives its recorded level;
//  3. anonymous visitors get read — pre-auth share links stay readable;
//  4. everyone else gets none, and callers treat the category as not found.
//
// The asymmetry between 3 and 4 is deliberate: old public links keep working
// while logged-in users cannot probe arbitrary category ids.
func (s *AccessService) Resolve(ctx context.Context, user *model.User, category *model.Category) (model.Permission, error) {
	if user != nil && category.OwnedBy(user.ID) {
		return model.PermissionWrite, nil
	}

	if user != nil {
		grant, err := s.shares.FindGrant(ctx, category.ID, user.ID)
		if err != nil {
			return model.PermissionNone, err
		}
		if grant != nil {
			return grant.Permission, nil
		}
		return model.PermissionNone, nil
	}

	return model.PermissionRead, nil
}

// CanWrite reports whether the caller holds write on the category.
func (s *AccessService) CanWrite(ctx context.Context, user *model.User, category *model.Category) (bool, error) {
	perm, err := s.Resolve(ctx, user, category)
	if err != nil {
		return false, err
	}
	return perm == model.PermissionWrite, nil
}
