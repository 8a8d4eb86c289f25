package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

func TestCloneCategoryFidelity(t *testing.T) {
	db := newTestDB(t)
	clone := NewCloneService(db)

	alice := createTestUser(t, db, "alice")
	carol := createTestUser(t, db, "carol")

	source := model.Category{
		UserID:      &alice.ID,
		Name:        "Groceries",
		Color:       "#4ECDC4",
		Icon:        "cart",
		SortOrder:   3,
		IsCollapsed: true,
	}
	require.NoError(t, db.Create(&source).Error)

	anna := model.Assignee{CategoryID: source.ID, Name: "Anna", Color: "#FF6B6B"}
	ben := model.Assignee{CategoryID: source.ID, Name: "Ben", Color: "#3B82F6"}
	require.NoError(t, db.Create(&anna).Error)
	require.NoError(t, db.Create(&ben).Error)

	// A stray assignee from another category, linked below to prove
	// unmapped associations get dropped rather than erroring.
	other := createTestCategory(t, db, alice, "Other")
	stray := model.Assignee{CategoryID: other.ID, Name: "Stray", Color: "#9333EA"}
	require.NoError(t, db.Create(&stray).Error)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	doneAt := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	milk := model.Todo{UserID: alice.ID, CategoryID: &source.ID, Title: "Buy milk", Description: "2 liters", DueDate: &due, SortOrder: 1}
	eggs := model.Todo{UserID: alice.ID, CategoryID: &source.ID, Title: "Buy eggs", SortOrder: 2}
	done := model.Todo{UserID: alice.ID, CategoryID: &source.ID, Title: "Pick up bread", IsCompleted: true, CompletedAt: &doneAt}
	require.NoError(t, db.Create(&milk).Error)
	require.NoError(t, db.Create(&eggs).Error)
	require.NoError(t, db.Create(&done).Error)

	require.NoError(t, db.Create(&model.TodoAssignee{TodoID: milk.ID, AssigneeID: anna.ID}).Error)
	require.NoError(t, db.Create(&model.TodoAssignee{TodoID: milk.ID, AssigneeID: ben.ID}).Error)
	require.NoError(t, db.Create(&model.TodoAssignee{TodoID: eggs.ID, AssigneeID: stray.ID}).Error)

	require.NoError(t, clone.CloneForUser(testCtx(), source.ID, carol.ID))

	var cloned model.Category
	require.NoError(t, db.Where("user_id = ? AND name = ?", carol.ID, "Groceries").First(&cloned).Error)
	require.NotEqual(t, source.ID, cloned.ID)
	require.Equal(t, source.Color, cloned.Color)
	require.Equal(t, source.Icon, cloned.Icon)
	require.Equal(t, source.SortOrder, cloned.SortOrder)
	require.Equal(t, source.IsCollapsed, cloned.IsCollapsed)

	var clonedAssignees []model.Assignee
	require.NoError(t, db.Where("category_id = ?", cloned.ID).Order("name").Find(&clonedAssignees).Error)
	require.Len(t, clonedAssignees, 2)
	require.Equal(t, "Anna", clonedAssignees[0].Name)
	require.Equal(t, "Ben", clonedAssignees[1].Name)
	require.NotEqual(t, anna.ID, clonedAssignees[0].ID)

	var clonedTodos []model.Todo
	require.NoError(t, db.Where("category_id = ?", cloned.ID).Order("title").Find(&clonedTodos).Error)
	require.Len(t, clonedTodos, 3)
	for _, todo := range clonedTodos {
		require.Equal(t, carol.ID, todo.UserID)
		require.NotContains(t, []uint{milk.ID, eggs.ID, done.ID}, todo.ID)
	}

	// Completion state and timestamp come across as-is.
	var clonedDone model.Todo
	require.NoError(t, db.Where("category_id = ? AND title = ?", cloned.ID, "Pick up bread").First(&clonedDone).Error)
	require.True(t, clonedDone.IsCompleted)
	require.NotNil(t, clonedDone.CompletedAt)
	require.True(t, clonedDone.CompletedAt.Equal(doneAt))

	// Milk keeps both tags, remapped to the cloned assignees; the stray
	// association on eggs is gone.
	var clonedMilk model.Todo
	require.NoError(t, db.Where("category_id = ? AND title = ?", cloned.ID, "Buy milk").First(&clonedMilk).Error)
	var links []model.TodoAssignee
	require.NoError(t, db.Where("todo_id = ?", clonedMilk.ID).Find(&links).Error)
	require.Len(t, links, 2)
	for _, link := range links {
		require.NotEqual(t, anna.ID, link.AssigneeID)
		require.NotEqual(t, ben.ID, link.AssigneeID)
	}

	var clonedEggs model.Todo
	require.NoError(t, db.Where("category_id = ? AND title = ?", cloned.ID, "Buy eggs").First(&clonedEggs).Error)
	var eggLinks []model.TodoAssignee
	require.NoError(t, db.Where("todo_id = ?", clonedEggs.ID).Find(&eggLinks).Error)
	require.Empty(t, eggLinks)

	// Source rows are untouched.
	var sourceTodos int64
	require.NoError(t, db.Model(&model.Todo{}).Where("category_id = ?", source.ID).Count(&sourceTodos).Error)
	require.EqualValues(t, 3, sourceTodos)
	var sourceLinks int64
	require.NoError(t, db.Model(&model.TodoAssignee{}).
		Where("todo_id IN ?", []uint{milk.ID, eggs.ID, done.ID}).Count(&sourceLinks).Error)
	require.EqualValues(t, 3, sourceLinks)
}

func TestCloneMissingCategoryIsNoOp(t *testing.T) {
	db := newTestDB(t)
	clone := NewCloneService(db)
	carol := createTestUser(t, db, "carol")

	require.NoError(t, clone.CloneForUser(testCtx(), 9999, carol.ID))

	var count int64
	require.NoError(t, db.Model(&model.Category{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
