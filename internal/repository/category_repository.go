package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// CategoryRepository manages todo categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("sort_order ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByOwnerWithShares preloads each owned category's outbound grants and the
// grantee identities, for the sharing settings page.
func (r *CategoryRepository) ListByOwnerWithShares(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Shares").Preload("Shares.SharedWithUser").
		Order("sort_order ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Category, error) {
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category. Its todos, assignees, shares and associations go
// with it in one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todoIDs []uint
		if err := tx.Model(&model.Todo{}).Where("category_id = ?", id).
			Pluck("id", &todoIDs).Error; err != nil {
			return err
		}
		if len(todoIDs) > 0 {
			if err := tx.Where("todo_id IN ?", todoIDs).Delete(&model.TodoAssignee{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Assignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.CategoryShare{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
