package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	autherror "github.com/abdulhaleem7/identity-credential-service/internal/errors"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/domain"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/dto"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/password"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	refreshStore domain.RefreshTokenStore
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, refreshStore domain.RefreshTokenStore) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		refreshStore: refreshStore,
	}
}

// CreateUser validates the registration input, enforces case-insensitive
// email uniqueness and persists a new user with a hashed password.
// Validation short-circuits in field order before any store access.
func (s *UserService) CreateUser(ctx context.Context, input dto.RegisterInput) (string, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return "", autherror.ErrFirstNameRequired
	}

	if strings.TrimSpace(input.LastName) == "" {
		return "", autherror.ErrLastNameRequired
	}

	if strings.TrimSpace(input.Email) == "" {
		return "", autherror.ErrEmailRequired
	}

	if strings.TrimSpace(input.Password) == "" {
		return "", autherror.ErrPasswordRequired
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user by email: %w", err)
	}
	if existingUser != nil {
		return "", autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique constraint on the normalized email backstops the
	// check above: a concurrent duplicate surfaces here as
	// ErrEmailAlreadyInUse rather than a second row.
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	return user.ID, nil
}

// IssueCredential authenticates the supplied credentials and mints an
// access/refresh token pair. An unknown email and a wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *UserService) IssueCredential(ctx context.Context, input dto.IssueCredentialInput) (*dto.CredentialResponse, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, autherror.ErrEmailRequired
	}

	if strings.TrimSpace(input.Password) == "" {
		return nil, autherror.ErrPasswordRequired
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if user == nil || !password.Verify(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		Email:            user.Email,
	}

	accessToken, err := s.tokenService.SignAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if err := s.refreshStore.Issue(ctx, &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(s.tokenService.RefreshTokenExpiry()),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.CredentialResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserOutput{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
	}, nil
}
