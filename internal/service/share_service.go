package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// ShareInput describes a new grant request.
type ShareInput struct {
	CategoryID uint             `json:"categoryId" binding:"required"`
	Username   string           `json:"username" binding:"required,min=3"`
	Permission model.Permission `json:"permission" binding:"omitempty,oneof=read write"`
}

// ShareService is the category sharing ledger: it creates and revokes grants
// and answers the two reverse lookups the settings page needs.
type ShareService struct {
	shares     *repository.ShareRepository
	categories *repository.CategoryRepository
	users      *repository.UserRepository
}

func NewShareService(shares *repository.ShareRepository, categories *repository.CategoryRepository, users *repository.UserRepository) *ShareService {
	return &ShareService{shares: shares, categories: categories, users: users}
}

// Share grants input.Username access to a category the caller owns.
func (s *ShareService) Share(ctx context.Context, caller *model.User, input ShareInput) (*model.CategoryShare, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	if input.Permission == "" {
		input.Permission = model.PermissionRead
	}
	if input.Permission != model.PermissionRead && input.Permission != model.PermissionWrite {
		return nil, apperr.New(apperr.Invalid, "Permission must be read or write")
	}
	if len(input.Username) < 3 {
		return nil, apperr.New(apperr.Invalid, "Username must be at least 3 characters")
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to share category", err)
	}
	if !category.OwnedBy(caller.ID) {
		return nil, apperr.New(apperr.NotOwner, "You do not own this category")
	}

	target, err := s.users.FindByUsername(ctx, input.Username)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to share category", err)
	}
	if target.ID == caller.ID {
		return nil, apperr.New(apperr.Invalid, "Cannot share with yourself")
	}

	share := model.CategoryShare{
		CategoryID:       input.CategoryID,
		OwnerID:          caller.ID,
		SharedWithUserID: target.ID,
		Permission:       input.Permission,
	}
	created, err := s.shares.CreateUnlessExists(ctx, &share)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to share category", err)
	}
	if !created {
		return nil, apperr.New(apperr.Conflict, "Already shared with this user")
	}
	return &share, nil
}

// Revoke deletes a grant the caller created.
func (s *ShareService) Revoke(ctx context.Context, caller *model.User, shareID uint) error {
	if caller == nil {
		return apperr.New(apperr.Unauthenticated, "Not authenticated")
	}

	share, err := s.shares.GetByID(ctx, shareID)
	if err == gorm.ErrRecordNotFound {
		return apperr.New(apperr.NotFound, "Share not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to revoke access", err)
	}
	if share.OwnerID != caller.ID {
		return apperr.New(apperr.NotOwner, "You do not own this share")
	}

	if err := s.shares.Delete(ctx, shareID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to revoke access", err)
	}
	return nil
}

// OwnedCategoriesWithShares lists the caller's categories with their outbound
// grants and grantee usernames.
func (s *ShareService) OwnedCategoriesWithShares(ctx context.Context, caller *model.User) ([]model.Category, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	categories, err := s.categories.ListByOwnerWithShares(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load shared categories", err)
	}
	return categories, nil
}

// SharedWithMe lists grants where the caller is the recipient, with each
// category and its owner.
func (s *ShareService) SharedWithMe(ctx context.Context, caller *model.User) ([]model.CategoryShare, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	shares, err := s.shares.ListForRecipient(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load shared categories", err)
	}
	return shares, nil
}
