package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

func newShareService(db *gorm.DB) *ShareService {
	return NewShareService(
		repository.NewShareRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestShareCategory(t *testing.T) {
	db := newTestDB(t)
	shares := newShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groceries := createTestCategory(t, db, alice, "Groceries")

	share, err := shares.Share(testCtx(), alice, ShareInput{
		CategoryID: groceries.ID,
		Username:   "bob",
		Permission: model.PermissionRead,
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, share.OwnerID)
	require.Equal(t, bob.ID, share.SharedWithUserID)
	require.Equal(t, model.PermissionRead, share.Permission)
}

func TestShareCategoryFailures(t *testing.T) {
	db := newTestDB(t)
	shares := newShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")
	groceries := createTestCategory(t, db, alice, "Groceries")
	createTestShare(t, db, groceries, alice, bob, model.PermissionRead)

	tests := []struct {
		name   string
		caller *model.User
		input  ShareInput
		kind   apperr.Kind
	}{
		{
			name:   "not authenticated",
			caller: nil,
			input:  ShareInput{CategoryID: groceries.ID, Username: "carol"},
			kind:   apperr.Unauthenticated,
		},
		{
			name:   "category not found",
			caller: alice,
			input:  ShareInput{CategoryID: 9999, Username: "carol"},
			kind:   apperr.NotFound,
		},
		{
			name:   "not the owner",
			caller: bob,
			input:  ShareInput{CategoryID: groceries.ID, Username: "carol"},
			kind:   apperr.NotOwner,
		},
		{
			name:   "target user missing",
			caller: alice,
			input:  ShareInput{CategoryID: groceries.ID, Username: "nobody"},
			kind:   apperr.NotFound,
		},
		{
			name:   "self share",
			caller: alice,
			input:  ShareInput{CategoryID: groceries.ID, Username: "alice"},
			kind:   apperr.Invalid,
		},
		{
			name:   "duplicate grant",
			caller: alice,
			input:  ShareInput{CategoryID: groceries.ID, Username: "bob"},
			kind:   apperr.Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shares.Share(testCtx(), tt.caller, tt.input)
			require.Error(t, err)
			require.True(t, apperr.Is(err, tt.kind), "want kind %v, got %v (%v)", tt.kind, apperr.KindOf(err), err)
		})
	}

	// The failed attempts never left a second grant for the pair.
	var count int64
	require.NoError(t, db.Model(&model.CategoryShare{}).
		Where("category_id = ? AND shared_with_user_id = ?", groceries.ID, bob.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestShareDefaultsToRead(t *testing.T) {
	db := newTestDB(t)
	shares := newShareService(db)

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	groceries := createTestCategory(t, db, alice, "Groceries")

	share, err := shares.Share(testCtx(), alice, ShareInput{CategoryID: groceries.ID, Username: "bob"})
	require.NoError(t, err)
	require.Equal(t, model.PermissionRead, share.Permission)
}

func TestRevokeShare(t *testing.T) {
	db := newTestDB(t)
	shares := newShareService(db)
	access := NewAccessService(repository.NewShareRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groceries := createTestCategory(t, db, alice, "Groceries")
	grant := createTestShare(t, db, groceries, alice, bob, model.PermissionRead)

	// Only the grant's owner may revoke it.
	err := shares.Revoke(testCtx(), bob, grant.ID)
	require.True(t, apperr.Is(err, apperr.NotOwner))

	require.NoError(t, shares.Revoke(testCtx(), alice, grant.ID))

	perm, err := access.Resolve(testCtx(), bob, groceries)
	require.NoError(t, err)
	require.Equal(t, model.PermissionNone, perm)

	err = shares.Revoke(testCtx(), alice, grant.ID)
	require.True(t, apperr.Is(err, apperr.NotFound))
}

func TestShareLedgerLookups(t *testing.T) {
	db := newTestDB(t)
	shares := newShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groceries := createTestCategory(t, db, alice, "Groceries")
	createTestCategory(t, db, alice, "Chores")
	createTestShare(t, db, groceries, alice, bob, model.PermissionWrite)

	owned, err := shares.OwnedCategoriesWithShares(testCtx(), alice)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	byName := map[string]model.Category{}
	for _, cat := range owned {
		byName[cat.Name] = cat
	}
	require.Len(t, byName["Groceries"].Shares, 1)
	require.NotNil(t, byName["Groceries"].Shares[0].SharedWithUser)
	require.Equal(t, "bob", byName["Groceries"].Shares[0].SharedWithUser.Username)
	require.Empty(t, byName["Chores"].Shares)

	received, err := shares.SharedWithMe(testCtx(), bob)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Category)
	require.Equal(t, "Groceries", received[0].Category.Name)
	require.NotNil(t, received[0].Category.Owner)
	require.Equal(t, "alice", received[0].Category.Owner.Username)

	_, err = shares.SharedWithMe(testCtx(), nil)
	require.True(t, apperr.Is(err, apperr.Unauthenticated))
}
