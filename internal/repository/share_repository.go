package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// ShareRepository is the ledger of directed category grants.
type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// CreateUnlessExists inserts a grant atomically with the duplicate check, so
// two concurrent shares of the same pair cannot both land. Returns
// gorm.ErrDuplicatedKey semantics via the bool: false means the pair already
// had a grant.
func (r *ShareRepository) CreateUnlessExists(ctx context.Context, share *model.CategoryShare) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CategoryShare
		err := tx.Where("category_id = ? AND shared_with_user_id = ?",
			share.CategoryID, share.SharedWithUserID).First(&existing).Error
		switch {
		case err == nil:
			return nil
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(share).Error; err != nil {
				return err
			}
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("create share: %w", err)
	}
	return created, nil
}

func (r *ShareRepository) GetByID(ctx context.Context, id uint) (*model.CategoryShare, error) {
	var share model.CategoryShare
	if err := r.db.WithContext(ctx).First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// FindGrant returns the grant for a (category, recipient) pair, or nil when
// none exists.
func (r *ShareRepository) FindGrant(ctx context.Context, categoryID, userID uint) (*model.CategoryShare, error) {
	var share model.CategoryShare
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND shared_with_user_id = ?", categoryID, userID).
		First(&share).Error
	switch {
	case err == nil:
		return &share, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find grant: %w", err)
	}
}

// ListForRecipient returns grants where the user is on the receiving end,
// with the category and its owner preloaded.
func (r *ShareRepository) ListForRecipient(ctx context.Context, userID uint) ([]model.CategoryShare, error) {
	var shares []model.CategoryShare
	if err := r.db.WithContext(ctx).Where("shared_with_user_id = ?", userID).
		Preload("Category").Preload("Category.Owner").
		Order("created_at ASC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *ShareRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.CategoryShare{}, id).Error; err != nil {
		return fmt.Errorf("delete share: %w", err)
	}
	return nil
}
