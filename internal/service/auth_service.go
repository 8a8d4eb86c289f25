package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// AuthService owns account creation and credential checks.
type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup creates an account. Usernames are unique and at least three
// characters; passwords at least six.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Invalid, "Username and password are required")
	}
	if len(username) < minUsernameLen {
		return nil, apperr.New(apperr.Invalid, "Username must be at least 3 characters")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.New(apperr.Invalid, "Password must be at least 6 characters")
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.Conflict, "Username already exists")
	case err != gorm.ErrRecordNotFound:
		return nil, apperr.Wrap(apperr.Internal, "Failed to create account", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create account", err)
	}

	user := model.User{Username: username, Password: string(hashed)}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create account", err)
	}
	return &user, nil
}

// Login verifies credentials. Unknown username and wrong password produce the
// same message, so the endpoint does not leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Invalid, "Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to log in", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password")
	}
	return user, nil
}

// ChangePassword replaces the caller's credential after re-verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, caller *model.User, current, newPassword, confirm string) error {
	if caller == nil {
		return apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	if current == "" {
		return apperr.New(apperr.Invalid, "Current password is required")
	}
	if len(newPassword) < minPasswordLen {
		return apperr.New(apperr.Invalid, "New password must be at least 6 characters")
	}
	if newPassword != confirm {
		return apperr.New(apperr.Invalid, "Passwords don't match")
	}

	if bcrypt.CompareHashAndPassword([]byte(caller.Password), []byte(current)) != nil {
		return apperr.New(apperr.Invalid, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to change password", err)
	}
	if err := s.users.UpdatePassword(ctx, caller.ID, string(hashed)); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to change password", err)
	}
	return nil
}
