package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// PendingShareTTL is how long a shared-link visit survives before signup.
const PendingShareTTL = time.Hour

// PendingShareService mints the single-use tokens that carry "this visitor
// clicked a shared-category link" across the signup flow. The cookie holds a
// random token; the category id lives server-side and is consumed exactly
// once.
type PendingShareService struct {
	repo *repository.PendingShareRepository
}

func NewPendingShareService(repo *repository.PendingShareRepository) *PendingShareService {
	return &PendingShareService{repo: repo}
}

// Issue stores a new token for the category and returns it.
func (s *PendingShareService) Issue(ctx context.Context, categoryID uint, now time.Time) (string, error) {
	pending := model.PendingShare{
		Token:      uuid.NewString(),
		CategoryID: categoryID,
		ExpiresAt:  now.Add(PendingShareTTL),
	}
	if err := s.repo.Create(ctx, &pending); err != nil {
		return "", err
	}
	return pending.Token, nil
}

// Lookup resolves a token to its category id. Unknown, consumed or expired
// tokens report false.
func (s *PendingShareService) Lookup(ctx context.Context, token string, now time.Time) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	pending, err := s.repo.Get(ctx, token)
	if err != nil {
		return 0, false, err
	}
	if pending == nil || pending.Expired(now) {
		return 0, false, nil
	}
	return pending.CategoryID, true, nil
}

// Consume deletes the token so a later signup with the same cookie clones
// nothing. Idempotent.
func (s *PendingShareService) Consume(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Delete(ctx, token)
}

// PurgeExpired removes tokens past their lifetime.
func (s *PendingShareService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.PurgeExpired(ctx, now)
}
