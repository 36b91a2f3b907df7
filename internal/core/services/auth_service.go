package services

import (
	"context"
	"errors"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/config"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/jwt"
	"smartchama/internal/pkg/password"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AuthResult carries the authenticated user and their access token
type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// Login authenticates a user by email and password. When a role is supplied
// it must match the stored one; a mismatch is treated the same as bad
// credentials.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if input.Role != "" && user.Role != input.Role {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}

// Signup creates a new user account with a hashed password. Email uniqueness
// is checked here, not enforced by the store.
func (s *AuthService) Signup(ctx context.Context, input *domain.InsertUser) (*AuthResult, error) {
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	in := *input
	in.Password = hashed
	user, err := s.userRepo.Create(ctx, &in)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}

// GetUserByID returns the user for the authenticated session
func (s *AuthService) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
}
