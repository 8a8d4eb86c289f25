package service

import (
	"context"
	"sort"
	"time"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// Overview buckets a user's todos for the home page views.
type Overview struct {
	Today     []model.Todo `json:"today"`
	Overdue   []model.Todo `json:"overdue"`
	Upcoming  []model.Todo `json:"upcoming"`
	Inbox     []model.Todo `json:"inbox"`
	Completed []model.Todo `json:"completed"`
}

// OverviewService builds the today/overdue/history rollup from a user's
// todos.
type OverviewService struct {
	todos      *repository.TodoRepository
	categories *repository.CategoryRepository
}

func NewOverviewService(todos *repository.TodoRepository, categories *repository.CategoryRepository) *OverviewService {
	return &OverviewService{todos: todos, categories: categories}
}

// Build sorts the caller's todos into due-today, overdue, upcoming, dateless
// inbox, and completed history (most recent first).
func (s *OverviewService) Build(ctx context.Context, caller *model.User, now time.Time) (*Overview, error) {
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}

	todos, err := s.todos.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load todos", err)
	}

	overview := &Overview{}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, todo := range todos {
		if todo.IsCompleted {
			overview.Completed = append(overview.Completed, todo)
			continue
		}
		switch {
		case todo.DueDate == nil:
			overview.Inbox = append(overview.Inbox, todo)
		case todo.DueDate.Before(dayStart):
			overview.Overdue = append(overview.Overdue, todo)
		case todo.DueDate.Before(dayEnd):
			overview.Today = append(overview.Today, todo)
		default:
			overview.Upcoming = append(overview.Upcoming, todo)
		}
	}

	byDueDate := func(items []model.Todo) {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DueDate.Before(*items[j].DueDate)
		})
	}
	byDueDate(overview.Overdue)
	byDueDate(overview.Today)
	byDueDate(overview.Upcoming)

	sort.SliceStable(overview.Completed, func(i, j int) bool {
		a, b := overview.Completed[i].CompletedAt, overview.Completed[j].CompletedAt
		switch {
		case a == nil && b == nil:
			return overview.Completed[i].UpdatedAt.After(overview.Completed[j].UpdatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return overview, nil
}
