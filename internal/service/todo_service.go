package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

const (
	maxTodoTitleLen       = 200
	maxTodoDescriptionLen = 1000
)

// TodoInput describes a new todo. A nil CategoryID lands it in the inbox.
type TodoInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uint      `json:"categoryId"`
}

// TodoUpdate carries the mutable fields; nil means leave unchanged.
// SetDueDate/SetCategory distinguish "clear it" from "don't touch it".
type TodoUpdate struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
	SetDueDate  bool       `json:"setDueDate"`
	CategoryID  *uint      `json:"categoryId"`
	SetCategory bool       `json:"setCategory"`
	IsCompleted *bool      `json:"isCompleted"`
	SortOrder   *int       `json:"order"`
}

// TodoService wraps todo CRUD with the ownership/write-grant checks.
type TodoService struct {
	todos      *repository.TodoRepository
	categories *repository.CategoryRepository
	access     *AccessService
}

func NewTodoService(todos *repository.TodoRepository, categories *repository.CategoryRepository, access *AccessService) *TodoService {
	return &TodoService{todos: todos, categories: categories, access: access}
}

func (s *TodoService) Create(ctx context.Context, caller *model.User, input TodoInput) (*model.Todo, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	if input.Title == "" {
		return nil, apperr.New(apperr.Invalid, "Title is required")
	}
	if len(input.Title) > maxTodoTitleLen {
		return nil, apperr.New(apperr.Invalid, "Title must be less than 200 characters")
	}
	if len(input.Description) > maxTodoDescriptionLen {
		return nil, apperr.New(apperr.Invalid, "Description must be less than 1000 characters")
	}
	if input.CategoryID != nil {
		if err := s.requireCategoryWrite(ctx, caller, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	todo := model.Todo{
		UserID:      caller.ID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if err := s.todos.Create(ctx, &todo); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create todo", err)
	}
	return &todo, nil
}

func (s *TodoService) Update(ctx context.Context, caller *model.User, id uint, update TodoUpdate) (*model.Todo, error) {
	todo, err := s.editableTodo(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		if *update.Title == "" || len(*update.Title) > maxTodoTitleLen {
			return nil, apperr.New(apperr.Invalid, "Title must be less than 200 characters")
		}
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		if len(*update.Description) > maxTodoDescriptionLen {
			return nil, apperr.New(apperr.Invalid, "Description must be less than 1000 characters")
		}
		fields["description"] = *update.Description
	}
	if update.SetDueDate {
		fields["due_date"] = update.DueDate
	}
	if update.SetCategory {
		if update.CategoryID != nil {
			if err := s.requireCategoryWrite(ctx, caller, *update.CategoryID); err != nil {
				return nil, err
			}
		}
		fields["category_id"] = update.CategoryID
	}
	if update.SortOrder != nil {
		fields["sort_order"] = *update.SortOrder
	}
	// The completion flag and its timestamp always travel together.
	if update.IsCompleted != nil {
		fields["is_completed"] = *update.IsCompleted
		if *update.IsCompleted {
			fields["completed_at"] = time.Now()
		} else {
			fields["completed_at"] = nil
		}
	}
	if len(fields) == 0 {
		return todo, nil
	}

	updated, err := s.todos.Update(ctx, id, fields)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update todo", err)
	}
	return updated, nil
}

// Toggle flips completion. Completed todos get a timestamp in the same write;
// reopened todos lose it.
func (s *TodoService) Toggle(ctx context.Context, caller *model.User, id uint, completed bool) (*model.Todo, error) {
	if _, err := s.editableTodo(ctx, caller, id); err != nil {
		return nil, err
	}
	updated, err := s.todos.SetCompleted(ctx, id, completed, time.Now())
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update todo", err)
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, caller *model.User, id uint) error {
	if _, err := s.editableTodo(ctx, caller, id); err != nil {
		return err
	}
	if err := s.todos.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete todo", err)
	}
	return nil
}

func (s *TodoService) ListMine(ctx context.Context, caller *model.User) ([]model.Todo, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	todos, err := s.todos.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load todos", err)
	}
	return todos, nil
}

// editableTodo loads a todo and verifies the caller may mutate it: either the
// caller created it, or it sits in a category the caller can write.
func (s *TodoService) editableTodo(ctx context.Context, caller *model.User, id uint) (*model.Todo, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	todo, err := s.todos.GetByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.NotFound, "Todo not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load todo", err)
	}
	if todo.UserID == caller.ID {
		return todo, nil
	}
	if todo.CategoryID == nil {
		return nil, apperr.New(apperr.NotOwner, "You do not have access to this todo")
	}
	if err := s.requireCategoryWrite(ctx, caller, *todo.CategoryID); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) requireCategoryWrite(ctx context.Context, caller *model.User, categoryID uint) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err == gorm.ErrRecordNotFound {
		return apperr.New(apperr.NotFound, "Category not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}
	ok, err := s.access.CanWrite(ctx, caller, category)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to check access", err)
	}
	if !ok {
		return apperr.New(apperr.NotOwner, "You do not have write access to this category")
	}
	return nil
}
