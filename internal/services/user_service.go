package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures don't reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// UserService handles registration and login.
type UserService struct {
	storage *storage.SQLiteRepository
	tokens  *auth.TokenIssuer
}

func NewUserService(store *storage.SQLiteRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{
		storage: store,
		tokens:  tokens,
	}
}

// Register creates a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, email, password, name string) (core.User, error) {
	if len(password) < 6 {
		return core.User{}, ErrPasswordTooShort
	}

	user := core.User{
		Email: core.NormalizeEmail(email),
		Name:  name,
	}
	if err := user.Validate(); err != nil {
		return core.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	stored, err := s.storage.CreateUser(ctx, user)
	if err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", stored.ID, "email", stored.Email)
	return stored, nil
}

// Login checks the credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return token, nil
}
