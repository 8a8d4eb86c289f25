package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

func newTodoService(db *gorm.DB) *TodoService {
	return NewTodoService(
		repository.NewTodoRepository(db),
		repository.NewCategoryRepository(db),
		NewAccessService(repository.NewShareRepository(db)),
	)
}

func TestTodoToggleCouplesTimestamp(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)

	alice := createTestUser(t, db, "alice")
	milk := createTestTodo(t, db, alice, nil, "Buy milk")

	done, err := todos.Toggle(testCtx(), alice, milk.ID, true)
	require.NoError(t, err)
	require.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)

	reopened, err := todos.Toggle(testCtx(), alice, milk.ID, false)
	require.NoError(t, err)
	require.False(t, reopened.IsCompleted)
	require.Nil(t, reopened.CompletedAt)
}

func TestTodoUpdateCouplesTimestamp(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)

	alice := createTestUser(t, db, "alice")
	milk := createTestTodo(t, db, alice, nil, "Buy milk")

	completed := true
	done, err := todos.Update(testCtx(), alice, milk.ID, TodoUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	require.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)

	// An unrelated edit leaves the completion pair alone.
	title := "Buy oat milk"
	renamed, err := todos.Update(testCtx(), alice, milk.ID, TodoUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", renamed.Title)
	require.True(t, renamed.IsCompleted)
	require.NotNil(t, renamed.CompletedAt)

	completed = false
	reopened, err := todos.Update(testCtx(), alice, milk.ID, TodoUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	require.False(t, reopened.IsCompleted)
	require.Nil(t, reopened.CompletedAt)
}

func TestTodoCreateValidation(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)
	alice := createTestUser(t, db, "alice")

	tests := []struct {
		name   string
		caller *model.User
		input  TodoInput
		kind   apperr.Kind
	}{
		{name: "anonymous", caller: nil, input: TodoInput{Title: "x"}, kind: apperr.Unauthenticated},
		{name: "empty title", caller: alice, input: TodoInput{Title: ""}, kind: apperr.Invalid},
		{name: "title too long", caller: alice, input: TodoInput{Title: strings.Repeat("a", 201)}, kind: apperr.Invalid},
		{name: "description too long", caller: alice, input: TodoInput{Title: "x", Description: strings.Repeat("a", 1001)}, kind: apperr.Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := todos.Create(testCtx(), tt.caller, tt.input)
			require.True(t, apperr.Is(err, tt.kind), "want kind %v, got %v (%v)", tt.kind, apperr.KindOf(err), err)
		})
	}

	inbox, err := todos.Create(testCtx(), alice, TodoInput{Title: "Loose end"})
	require.NoError(t, err)
	require.Nil(t, inbox.CategoryID)
}

func TestTodoMutationRequiresWriteGrant(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	groceries := createTestCategory(t, db, alice, "Groceries")
	milk := createTestTodo(t, db, alice, groceries, "Buy milk")

	createTestShare(t, db, groceries, alice, bob, model.PermissionWrite)
	createTestShare(t, db, groceries, alice, carol, model.PermissionRead)

	// Write grant: bob may toggle, create into, and delete from the category.
	done, err := todos.Toggle(testCtx(), bob, milk.ID, true)
	require.NoError(t, err)
	require.True(t, done.IsCompleted)

	added, err := todos.Create(testCtx(), bob, TodoInput{Title: "Buy eggs", CategoryID: &groceries.ID})
	require.NoError(t, err)
	require.Equal(t, bob.ID, added.UserID)

	// Read grant only: carol is rejected on every mutation.
	_, err = todos.Toggle(testCtx(), carol, milk.ID, false)
	require.True(t, apperr.Is(err, apperr.NotOwner))

	_, err = todos.Create(testCtx(), carol, TodoInput{Title: "Buy bread", CategoryID: &groceries.ID})
	require.True(t, apperr.Is(err, apperr.NotOwner))

	err = todos.Delete(testCtx(), carol, milk.ID)
	require.True(t, apperr.Is(err, apperr.NotOwner))

	// Carol still edits her own inbox todos.
	hers := createTestTodo(t, db, carol, nil, "Water plants")
	_, err = todos.Toggle(testCtx(), carol, hers.ID, true)
	require.NoError(t, err)
}

func TestTodoUpdateMoveBetweenCategories(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groceries := createTestCategory(t, db, alice, "Groceries")
	errands := createTestCategory(t, db, bob, "Errands")
	milk := createTestTodo(t, db, alice, groceries, "Buy milk")

	// Moving into a category requires write access on the target.
	_, err := todos.Update(testCtx(), alice, milk.ID, TodoUpdate{CategoryID: &errands.ID, SetCategory: true})
	require.True(t, apperr.Is(err, apperr.NotOwner))

	// Clearing the category drops the todo back into the inbox.
	moved, err := todos.Update(testCtx(), alice, milk.ID, TodoUpdate{SetCategory: true})
	require.NoError(t, err)
	require.Nil(t, moved.CategoryID)
}

func TestTodoNotFound(t *testing.T) {
	db := newTestDB(t)
	todos := newTodoService(db)
	alice := createTestUser(t, db, "alice")

	_, err := todos.Toggle(testCtx(), alice, 9999, true)
	require.True(t, apperr.Is(err, apperr.NotFound))

	err = todos.Delete(testCtx(), alice, 9999)
	require.True(t, apperr.Is(err, apperr.NotFound))
}
