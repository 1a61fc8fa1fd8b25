// Package auth
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"loftly/internal/domain"
	"loftly/internal/token"
)

// LoginLimiter throttles failed login attempts per account. A nil
// limiter disables throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type Service struct {
	repo    domain.UserRepository
	tokens  *token.Service
	limiter LoginLimiter
}

func NewService(repo domain.UserRepository, tokens *token.Service, limiter LoginLimiter) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		limiter: limiter,
	}
}

// Register creates a new user and immediately issues a token for it.
// Email and name uniqueness is checked up front, but the database
// constraints remain the authority: the repository maps a late unique
// violation to the same duplicate errors.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, req.Email); err != nil {
			return nil, err
		}
	}

	accessToken, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Authenticate resolves an incoming token to a stored user. Any token
// failure, and a subject that no longer exists, surface as
// domain.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	subject, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
