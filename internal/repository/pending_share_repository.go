package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// PendingShareRepository stores the one-shot tokens minted for anonymous
// shared-link visitors.
type PendingShareRepository struct {
	db *gorm.DB
}

func NewPendingShareRepository(db *gorm.DB) *PendingShareRepository {
	return &PendingShareRepository{db: db}
}

func (r *PendingShareRepository) Create(ctx context.Context, pending *model.PendingShare) error {
	if err := r.db.WithContext(ctx).Create(pending).Error; err != nil {
		return fmt.Errorf("create pending share: %w", err)
	}
	return nil
}

// Get returns the row for a token, or nil when it is unknown.
func (r *PendingShareRepository) Get(ctx context.Context, token string) (*model.PendingShare, error) {
	var pending model.PendingShare
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&pending).Error
	switch {
	case err == nil:
		return &pending, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find pending share: %w", err)
	}
}

// Delete consumes a token. Deleting an unknown token is a no-op.
func (r *PendingShareRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).
		Delete(&model.PendingShare{}).Error; err != nil {
		return fmt.Errorf("delete pending share: %w", err)
	}
	return nil
}

// PurgeExpired drops every token past its lifetime.
func (r *PendingShareRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.PendingShare{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge pending shares: %w", res.Error)
	}
	return res.RowsAffected, nil
}
