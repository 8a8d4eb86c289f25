package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// TodoRepository handles CRUD for todos.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID uint) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Assignees").
		Order("sort_order ASC, created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListIncompleteByCategory returns the open items shown on a shared category
// page, oldest ordering first.
func (r *TodoRepository) ListIncompleteByCategory(ctx context.Context, categoryID uint) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_completed = ?", categoryID, false).
		Preload("Assignees").
		Order("sort_order ASC, created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Todo, error) {
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return r.GetByID(ctx, id)
}

// SetCompleted flips the completion flag and its timestamp in a single
// update. The two columns never change independently through this path.
func (r *TodoRepository) SetCompleted(ctx context.Context, id uint, completed bool, now time.Time) (*model.Todo, error) {
	fields := map[string]interface{}{
		"is_completed": completed,
		"completed_at": nil,
		"updated_at":   now,
	}
	if completed {
		fields["completed_at"] = now
	}
	return r.Update(ctx, id, fields)
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&model.TodoAssignee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Todo{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
