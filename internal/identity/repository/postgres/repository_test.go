package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	autherror "github.com/abdulhaleem7/identity-credential-service/internal/errors"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/domain"
	repo "github.com/abdulhaleem7/identity-credential-service/internal/identity/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetByEmail covers the GetByEmail repository method.
func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	columns := []string{"id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at"}
	userEmail := "john.doe@example.com"

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, first_name").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("user-123", "John", "Doe", userEmail, "hash", time.Now(), time.Now()))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, "John", user.FirstName)
		assert.Equal(t, userEmail, user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, first_name").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, first_name").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
	})
}

// TestCreate covers the Create repository method.
func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()

	r := repo.NewRepository(mock)
	userToCreate := &domain.User{
		ID:           "user-123",
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "new@example.com",
		PasswordHash: "new-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	args := []any{
		userToCreate.ID, userToCreate.FirstName, userToCreate.LastName,
		userToCreate.Email, userToCreate.PasswordHash, userToCreate.CreatedAt, userToCreate.UpdatedAt,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, userToCreate)
		assert.NoError(t, err)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_idx"})

		err := r.Create(ctx, userToCreate)
		assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, userToCreate)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})
}

// TestIssue covers the refresh-token Issue method.
func TestIssue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()

	r := repo.NewRepository(mock)
	rt := &domain.RefreshToken{
		ID:        "rt-123",
		UserID:    "user-123",
		Token:     "opaque-token",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt, rt.Revoked).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Issue(ctx, rt)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt, rt.Revoked).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Issue(ctx, rt)
		assert.Error(t, err)
	})
}

// TestRevoke covers the refresh-token Revoke method.
func TestRevoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked").
		WithArgs("rt-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.Revoke(context.Background(), "rt-123")
	assert.NoError(t, err)
}

// TestRedeemAndRotate covers the transactional rotation primitive.
func TestRedeemAndRotate(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "user_id", "expires_at", "revoked"}

	next := &domain.RefreshToken{
		ID:        "rt-next",
		Token:     "next-token",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, expires_at, revoked").
			WithArgs("current-token").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("rt-current", "user-123", time.Now().Add(time.Hour), false))
		mock.ExpectExec("UPDATE refresh_tokens SET revoked").
			WithArgs("rt-current").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(next.ID, "user-123", next.Token, next.ExpiresAt, next.CreatedAt, next.Revoked).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		mock.ExpectRollback() // deferred rollback after commit is a no-op

		rotated, err := r.RedeemAndRotate(ctx, "current-token", next)
		require.NoError(t, err)
		assert.Equal(t, "user-123", rotated.UserID)
		assert.Equal(t, "next-token", rotated.Token)
	})

	t.Run("unknown token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, expires_at, revoked").
			WithArgs("missing-token").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		_, err = r.RedeemAndRotate(ctx, "missing-token", next)
		assert.ErrorIs(t, err, autherror.ErrRefreshTokenNotFound)
	})

	t.Run("revoked token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, expires_at, revoked").
			WithArgs("revoked-token").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("rt-current", "user-123", time.Now().Add(time.Hour), true))
		mock.ExpectRollback()

		_, err = r.RedeemAndRotate(ctx, "revoked-token", next)
		assert.ErrorIs(t, err, autherror.ErrRefreshTokenRevoked)
	})

	t.Run("expired token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, expires_at, revoked").
			WithArgs("expired-token").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("rt-current", "user-123", time.Now().Add(-time.Hour), false))
		mock.ExpectRollback()

		_, err = r.RedeemAndRotate(ctx, "expired-token", next)
		assert.ErrorIs(t, err, autherror.ErrRefreshTokenExpired)
	})
}
