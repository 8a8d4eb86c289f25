package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// AssigneeInput describes a new collaborator label for a category.
type AssigneeInput struct {
	CategoryID uint   `json:"categoryId" binding:"required"`
	Name       string `json:"name" binding:"required,max=50"`
	Color      string `json:"color" binding:"required,hexcolor"`
}

// AssigneeService manages category-scoped labels and their todo tags.
// Assignees are not accounts; they only exist inside their category.
type AssigneeService struct {
	assignees  *repository.AssigneeRepository
	todos      *repository.TodoRepository
	categories *repository.CategoryRepository
	access     *AccessService
}

func NewAssigneeService(assignees *repository.AssigneeRepository, todos *repository.TodoRepository, categories *repository.CategoryRepository, access *AccessService) *AssigneeService {
	return &AssigneeService{assignees: assignees, todos: todos, categories: categories, access: access}
}

func (s *AssigneeService) Create(ctx context.Context, caller *model.User, input AssigneeInput) (*model.Assignee, error) {
	if input.Name == "" {
		return nil, apperr.New(apperr.Invalid, "Assignee name is required")
	}
	if !hexColorPattern.MatchString(input.Color) {
		return nil, apperr.New(apperr.Invalid, "Invalid color format")
	}
	if err := s.requireWrite(ctx, caller, input.CategoryID); err != nil {
		return nil, err
	}

	assignee := model.Assignee{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Color:      input.Color,
	}
	if err := s.assignees.Create(ctx, &assignee); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create assignee", err)
	}
	return &assignee, nil
}

// Delete removes the assignee and every association pointing at it.
func (s *AssigneeService) Delete(ctx context.Context, caller *model.User, id uint) error {
	assignee, err := s.assignees.GetByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return apperr.New(apperr.NotFound, "Assignee not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete assignee", err)
	}
	if err := s.requireWrite(ctx, caller, assignee.CategoryID); err != nil {
		return err
	}
	if err := s.assignees.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete assignee", err)
	}
	return nil
}

// Assign tags a todo with an assignee from the same category.
func (s *AssigneeService) Assign(ctx context.Context, caller *model.User, todoID, assigneeID uint) error {
	if err := s.pair(ctx, caller, todoID, assigneeID); err != nil {
		return err
	}
	if err := s.assignees.Assign(ctx, todoID, assigneeID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to assign todo", err)
	}
	return nil
}

func (s *AssigneeService) Unassign(ctx context.Context, caller *model.User, todoID, assigneeID uint) error {
	if err := s.pair(ctx, caller, todoID, assigneeID); err != nil {
		return err
	}
	if err := s.assignees.Unassign(ctx, todoID, assigneeID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to unassign todo", err)
	}
	return nil
}

// pair loads both sides of an association, insisting they share a category
// the caller can write.
func (s *AssigneeService) pair(ctx context.Context, caller *model.User, todoID, assigneeID uint) error {
	assignee, err := s.assignees.GetByID(ctx, assigneeID)
	if err == gorm.ErrRecordNotFound {
		return apperr.New(apperr.NotFound, "Assignee not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load assignee", err)
	}
	todo, err := s.todos.GetByID(ctx, todoID)
	if err == gorm.ErrRecordNotFound {
		return apperr.New(apperr.NotFound, "Todo not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load todo", err)
	}
	if todo.CategoryID == nil || *todo.CategoryID != assignee.CategoryID {
		return apperr.New(apperr.Invalid, "Todo and assignee belong to different categories")
	}
	return s.requireWrite(ctx, caller, assignee.CategoryID)
}

func (s *AssigneeService) requireWrite(ctx context.Context, caller *model.User, categoryID uint) error {
	if caller == nil {
		return apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
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
