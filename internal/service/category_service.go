package service

import (
	"context"
	"regexp"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const maxCategoryNameLen = 50

// CategoryInput describes a new category.
type CategoryInput struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"required,hexcolor"`
	Icon  string `json:"icon"`
}

// CategoryUpdate carries the mutable fields; nil means leave unchanged.
type CategoryUpdate struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string `json:"icon"`
	IsCollapsed *bool   `json:"isCollapsed"`
	SortOrder   *int    `json:"order"`
}

// CategoryPage is everything the shared category view renders.
type CategoryPage struct {
	Category   *model.Category  `json:"category"`
	Todos      []model.Todo     `json:"todos"`
	Assignees  []model.Assignee `json:"assignees"`
	Permission model.Permission `json:"permission"`
}

// CategoryService owns category CRUD and the shared category page.
type CategoryService struct {
	categories *repository.CategoryRepository
	todos      *repository.TodoRepository
	assignees  *repository.AssigneeRepository
	access     *AccessService
}

func NewCategoryService(categories *repository.CategoryRepository, todos *repository.TodoRepository, assignees *repository.AssigneeRepository, access *AccessService) *CategoryService {
	return &CategoryService{categories: categories, todos: todos, assignees: assignees, access: access}
}

func (s *CategoryService) Create(ctx context.Context, caller *model.User, input CategoryInput) (*model.Category, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	if input.Name == "" {
		return nil, apperr.New(apperr.Invalid, "Category name is required")
	}
	if len(input.Name) > maxCategoryNameLen {
		return nil, apperr.New(apperr.Invalid, "Category name must be less than 50 characters")
	}
	if !hexColorPattern.MatchString(input.Color) {
		return nil, apperr.New(apperr.Invalid, "Invalid color format")
	}

	category := model.Category{
		UserID: &caller.ID,
		Name:   input.Name,
		Color:  input.Color,
		Icon:   input.Icon,
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create category", err)
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, caller *model.User, id uint, update CategoryUpdate) (*model.Category, error) {
	category, err := s.ownedCategory(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		if *update.Name == "" || len(*update.Name) > maxCategoryNameLen {
			return nil, apperr.New(apperr.Invalid, "Category name must be less than 50 characters")
		}
		fields["name"] = *update.Name
	}
	if update.Color != nil {
		if !hexColorPattern.MatchString(*update.Color) {
			return nil, apperr.New(apperr.Invalid, "Invalid color format")
		}
		fields["color"] = *update.Color
	}
	if update.Icon != nil {
		fields["icon"] = *update.Icon
	}
	if update.IsCollapsed != nil {
		fields["is_collapsed"] = *update.IsCollapsed
	}
	if update.SortOrder != nil {
		fields["sort_order"] = *update.SortOrder
	}
	if len(fields) == 0 {
		return category, nil
	}

	updated, err := s.categories.Update(ctx, id, fields)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update category", err)
	}
	return updated, nil
}

// ToggleCollapse persists the collapse flag for the owner's view.
func (s *CategoryService) ToggleCollapse(ctx context.Context, caller *model.User, id uint, collapsed bool) (*model.Category, error) {
	return s.Update(ctx, caller, id, CategoryUpdate{IsCollapsed: &collapsed})
}

// Delete removes the category and cascades to its todos, assignees and
// shares.
func (s *CategoryService) Delete(ctx context.Context, caller *model.User, id uint) error {
	if _, err := s.ownedCategory(ctx, caller, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete category", err)
	}
	return nil
}

func (s *CategoryService) ListOwned(ctx context.Context, caller *model.User) ([]model.Category, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	categories, err := s.categories.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load categories", err)
	}
	return categories, nil
}

// Page loads the shared category view: the category, its open todos with
// their assignee tags, its assignee list, and the caller's permission. A
// caller who resolves to none gets not-found, indistinguishable from a
// missing category.
func (s *CategoryService) Page(ctx context.Context, caller *model.User, id uint) (*CategoryPage, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}

	perm, err := s.access.Resolve(ctx, caller, category)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}
	if perm == model.PermissionNone {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}

	todos, err := s.todos.ListIncompleteByCategory(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}
	assignees, err := s.assignees.ListByCategory(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}

	return &CategoryPage{
		Category:   category,
		Todos:      todos,
		Assignees:  assignees,
		Permission: perm,
	}, nil
}

// ownedCategory loads a category and insists the caller owns it.
func (s *CategoryService) ownedCategory(ctx context.Context, caller *model.User, id uint) (*model.Category, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load category", err)
	}
	if !category.OwnedBy(caller.ID) {
		return nil, apperr.New(apperr.NotOwner, "You do not own this category")
	}
	return category, nil
}
