package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// newTestDB opens a fresh in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := model.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestCategory(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Category {
	t.Helper()
	category := model.Category{Name: name, Color: "#FF6B6B"}
	if owner != nil {
		category.UserID = &owner.ID
	}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createTestTodo(t *testing.T, db *gorm.DB, owner *model.User, category *model.Category, title string) *model.Todo {
	t.Helper()
	todo := model.Todo{UserID: owner.ID, Title: title}
	if category != nil {
		todo.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(&todo).Error)
	return &todo
}

func createTestShare(t *testing.T, db *gorm.DB, category *model.Category, owner, recipient *model.User, perm model.Permission) *model.CategoryShare {
	t.Helper()
	share := model.CategoryShare{
		CategoryID:       category.ID,
		OwnerID:          owner.ID,
		SharedWithUserID: recipient.ID,
		Permission:       perm,
	}
	require.NoError(t, db.Create(&share).Error)
	return &share
}

func testCtx() context.Context {
	return context.Background()
}

func ptrTime(v time.Time) *time.Time {
	return &v
}
