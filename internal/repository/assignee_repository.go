package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// AssigneeRepository manages category-scoped assignee labels and their todo
// associations.
type AssigneeRepository struct {
	db *gorm.DB
}

func NewAssigneeRepository(db *gorm.DB) *AssigneeRepository {
	return &AssigneeRepository{db: db}
}

func (r *AssigneeRepository) Create(ctx context.Context, assignee *model.Assignee) error {
	if err := r.db.WithContext(ctx).Create(assignee).Error; err != nil {
		return fmt.Errorf("create assignee: %w", err)
	}
	return nil
}

func (r *AssigneeRepository) GetByID(ctx context.Context, id uint) (*model.Assignee, error) {
	var assignee model.Assignee
	if err := r.db.WithContext(ctx).First(&assignee, id).Error; err != nil {
		return nil, err
	}
	return &assignee, nil
}

func (r *AssigneeRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Assignee, error) {
	var assignees []model.Assignee
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).
		Order("created_at ASC").Find(&assignees).Error; err != nil {
		return nil, err
	}
	return assignees, nil
}

// Delete removes an assignee and every todo association pointing at it.
func (r *AssigneeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignee_id = ?", id).Delete(&model.TodoAssignee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignee{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete assignee: %w", err)
	}
	return nil
}

func (r *AssigneeRepository) Assign(ctx context.Context, todoID, assigneeID uint) error {
	row := model.TodoAssignee{TodoID: todoID, AssigneeID: assigneeID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("assign todo: %w", err)
	}
	return nil
}

func (r *AssigneeRepository) Unassign(ctx context.Context, todoID, assigneeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("todo_id = ? AND assignee_id = ?", todoID, assigneeID).
		Delete(&model.TodoAssignee{}).Error; err != nil {
		return fmt.Errorf("unassign todo: %w", err)
	}
	return nil
}
