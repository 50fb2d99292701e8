// Package memory provides an in-memory backing for the identity stores,
// keyed by case-normalized email. Useful for local runs and tests where a
// database is not available.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	autherror "github.com/abdulhaleem7/identity-credential-service/internal/errors"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/domain"
)

// Store implements domain.UserRepository and domain.RefreshTokenStore
// with mutex-guarded maps. Create performs its uniqueness check and
// insert under a single lock, so concurrent duplicate registrations
// cannot both succeed.
type Store struct {
	mu           sync.RWMutex
	usersByEmail map[string]domain.User
	tokensByID   map[string]domain.RefreshToken
}

func NewStore() *Store {
	return &Store{
		usersByEmail: make(map[string]domain.User),
		tokensByID:   make(map[string]domain.RefreshToken),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

func (s *Store) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (s *Store) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.usersByEmail[key]; exists {
		return autherror.ErrEmailAlreadyInUse
	}

	s.usersByEmail[key] = *user

	return nil
}

func (s *Store) Issue(_ context.Context, rt *domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokensByID[rt.ID] = *rt

	return nil
}

func (s *Store) RedeemAndRotate(_ context.Context, token string, next *domain.RefreshToken) (*domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *domain.RefreshToken
	for id := range s.tokensByID {
		rt := s.tokensByID[id]
		if rt.Token == token {
			current = &rt
			break
		}
	}

	if current == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	if current.Revoked {
		return nil, autherror.ErrRefreshTokenRevoked
	}

	if time.Now().After(current.ExpiresAt) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	current.Revoked = true
	s.tokensByID[current.ID] = *current

	next.UserID = current.UserID
	s.tokensByID[next.ID] = *next

	return next, nil
}

func (s *Store) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tokensByID[id]
	if !ok {
		return autherror.ErrRefreshTokenNotFound
	}

	rt.Revoked = true
	s.tokensByID[id] = rt

	return nil
}
