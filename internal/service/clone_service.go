package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

// CloneService deep-copies a shared category into a fresh account at signup.
type CloneService struct {
	db *gorm.DB
}

func NewCloneService(db *gorm.DB) *CloneService {
	return &CloneService{db: db}
}

// CloneForUser copies the category, its assignees, its todos and their
// assignee associations under new identities owned by userID. The whole copy
// runs in one transaction, so a failure leaves no half-cloned category. A
// category that no longer exists is a silent no-op. The source rows are never
// touched.
func (s *CloneService) CloneForUser(ctx context.Context, categoryID, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original model.Category
		if err := tx.First(&original, categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		clone := model.Category{
			UserID:      &userID,
			Name:        original.Name,
			Color:       original.Color,
			Icon:        original.Icon,
			SortOrder:   original.SortOrder,
			IsCollapsed: original.IsCollapsed,
		}
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}

		var assignees []model.Assignee
		if err := tx.Where("category_id = ?", categoryID).Find(&assignees).Error; err != nil {
			return err
		}
		assigneeMap := make(map[uint]uint, len(assignees))
		for _, assignee := range assignees {
			copied := model.Assignee{
				CategoryID: clone.ID,
				Name:       assignee.Name,
				Color:      assignee.Color,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
			assigneeMap[assignee.ID] = copied.ID
		}

		var todos []model.Todo
		if err := tx.Where("category_id = ?", categoryID).Find(&todos).Error; err != nil {
			return err
		}
		for _, todo := range todos {
			// Completion state and timestamp are copied as-is, not reset.
			copied := model.Todo{
				UserID:      userID,
				CategoryID:  &clone.ID,
				Title:       todo.Title,
				Description: todo.Description,
				DueDate:     todo.DueDate,
				IsCompleted: todo.IsCompleted,
				CompletedAt: todo.CompletedAt,
				SortOrder:   todo.SortOrder,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}

			var links []model.TodoAssignee
			if err := tx.Where("todo_id = ?", todo.ID).Find(&links).Error; err != nil {
				return err
			}
			for _, link := range links {
				newAssigneeID, ok := assigneeMap[link.AssigneeID]
				if !ok {
					// Association points at an assignee that was never
					// cloned; drop it rather than fail the copy.
					continue
				}
				row := model.TodoAssignee{TodoID: copied.ID, AssigneeID: newAssigneeID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clone category %d: %w", categoryID, err)
	}
	return nil
}
