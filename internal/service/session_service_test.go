package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

func newSessionService(t *testing.T) (*SessionService, *repository.UserRepository, *model.User) {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	alice := createTestUser(t, db, "alice")
	return NewSessionService(users, []byte("test-secret")), users, alice
}

func TestSessionRoundTrip(t *testing.T) {
	sessions, _, alice := newSessionService(t)

	token, err := sessions.IssueToken(alice.ID, time.Now())
	require.NoError(t, err)

	userID, ok := sessions.ParseToken(token)
	require.True(t, ok)
	require.Equal(t, alice.ID, userID)

	user, err := sessions.ResolveUser(testCtx(), token)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
}

func TestSessionRejectsForgedAndMalformedTokens(t *testing.T) {
	sessions, _, alice := newSessionService(t)

	other := NewSessionService(nil, []byte("other-secret"))
	forged, err := other.IssueToken(alice.ID, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "raw user id", raw: strconv.FormatUint(uint64(alice.ID), 10)},
		{name: "garbage", raw: "not-a-token"},
		{name: "signed with wrong secret", raw: forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := sessions.ParseToken(tt.raw)
			require.False(t, ok)

			user, err := sessions.ResolveUser(testCtx(), tt.raw)
			require.NoError(t, err)
			require.Nil(t, user)
		})
	}
}

func TestSessionExpiryTreatedAsAnonymous(t *testing.T) {
	sessions, _, alice := newSessionService(t)

	token, err := sessions.IssueToken(alice.ID, time.Now().Add(-SessionTTL-time.Hour))
	require.NoError(t, err)

	_, ok := sessions.ParseToken(token)
	require.False(t, ok)
}

func TestSessionForDeletedUserResolvesToAnonymous(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	alice := createTestUser(t, db, "alice")
	sessions := NewSessionService(users, []byte("test-secret"))

	token, err := sessions.IssueToken(alice.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Delete(&model.User{}, alice.ID).Error)

	user, err := sessions.ResolveUser(testCtx(), token)
	require.NoError(t, err)
	require.Nil(t, user)
}
