package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
	"inventory-spa/pkg/jwt"
	"inventory-spa/pkg/validator"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	Authenticate(token string) (string, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"-"`
}

type credentials struct {
	Username string `validate:"notblank"`
	Password string `validate:"required"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func validateCredentials(username, password string) error {
	if errs := validator.ValidateStruct(&credentials{Username: username, Password: password}); len(errs) > 0 {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	// 1. Reject a taken username up front
	_, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrConflict
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find user: %w", err)
	}

	// 2. Hash and store
	user := &model.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Issue token
	token, expiresAt, err := s.tokens.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies a bearer token and returns the username it carries.
func (s *authService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return "", ErrForbidden
	}
	return claims.Username, nil
}

// ResetPassword stores a new hash for an existing user. Tokens already issued
// stay valid until they expire.
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, newPassword); err != nil {
		return err
	}

	user := &model.User{Username: username}
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, username, user.Password); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
