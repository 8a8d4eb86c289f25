package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

const tokenIssuer = "personal-todos"

// SessionService issues and verifies the signed tokens carried in the session
// cookie. Tokens are HS256 JWTs binding a user id and expiry, so a client
// cannot forge a session by writing a bare id into the cookie.
type SessionService struct {
	users  *repository.UserRepository
	secret []byte
}

func NewSessionService(users *repository.UserRepository, secret []byte) *SessionService {
	return &SessionService{users: users, secret: secret}
}

// IssueToken signs a token for the given user, expiring after SessionTTL.
func (s *SessionService) IssueToken(userID uint, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token's signature and expiry and returns the bound
// user id. Any malformed, forged or expired token means anonymous, never an
// error.
func (s *SessionService) ParseToken(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ResolveUser maps a raw cookie value to a live user record. A token
// referencing a deleted account resolves to nil, same as no token at all.
func (s *SessionService) ResolveUser(ctx context.Context, raw string) (*model.User, error) {
	userID, ok := s.ParseToken(raw)
	if !ok {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		return user, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
}
