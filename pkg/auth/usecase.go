package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiptrack/api/pkg/logging"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (AuthResult, error)
	Login(ctx context.Context, username, password string) (AuthResult, error)
	Profile(ctx context.Context, id uuid.UUID) (User, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    logging.Logger
	now    func() time.Time
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) AuthUseCase {
	return &authService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log.With("component", "auth"),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (AuthResult, error) {
	username = normalizeUsername(username)
	if err := (credentials{Username: username, Password: password}).Validate(); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Best-effort check; the repository's unique constraint is authoritative.
	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		s.log.Info(ctx, "registration rejected", "username", username, "reason", "duplicate")
		return AuthResult{}, ErrUserAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			s.log.Info(ctx, "registration rejected", "username", username, "reason", "duplicate")
			return AuthResult{}, ErrUserAlreadyExists
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", username)
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Info(ctx, "login failed", "username", username)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info(ctx, "login failed", "username", username)
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Profile(ctx context.Context, id uuid.UUID) (User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
