package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"memoir/internal/domain"
)

const tokenExpiry = 24 * time.Hour

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokens         domain.TokenIssuer
	contextTimeout time.Duration
}

// NewUserService returns the UserService for organizer signup and login.
func NewUserService(userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokens:         tokens,
		contextTimeout: timeout,
	}
}

func (s *userService) SignUp(ctx context.Context, email, name, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("email and password are required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(email, strings.TrimSpace(name), hash, salt, time.Now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, user.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
