package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	autherror "github.com/abdulhaleem7/identity-credential-service/internal/errors"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it too, which is what the tests use.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements domain.UserRepository and
// domain.RefreshTokenStore on top of PostgreSQL.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail matches case-insensitively via the expression the unique
// index is built on. Returns (nil, nil) when no user exists.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// Create inserts the user. The unique index on LOWER(email) makes this
// the atomic insert-if-absent step; a concurrent duplicate comes back as
// ErrEmailAlreadyInUse.
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return autherror.ErrEmailAlreadyInUse
	}

	return err
}

func (r *Repository) Issue(ctx context.Context, rt *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt, rt.Revoked)

	return err
}

// RedeemAndRotate atomically revokes the presented token and records its
// replacement. No endpoint calls this yet; it exists so a redemption flow
// has a single transactional primitive to build on.
func (r *Repository) RedeemAndRotate(ctx context.Context, token string, next *domain.RefreshToken) (*domain.RefreshToken, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT id, user_id, expires_at, revoked
		FROM refresh_tokens
		WHERE token = $1
		FOR UPDATE
	`, token)

	var (
		current   domain.RefreshToken
		expiresAt time.Time
	)
	if err := row.Scan(&current.ID, &current.UserID, &expiresAt, &current.Revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autherror.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if current.Revoked {
		return nil, autherror.ErrRefreshTokenRevoked
	}

	if time.Now().After(expiresAt) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	if _, err := tx.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1`, current.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	next.UserID = current.UserID
	if _, err := tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, next.ID, next.UserID, next.Token, next.ExpiresAt, next.CreatedAt, next.Revoked); err != nil {
		return nil, fmt.Errorf("failed to store rotated refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rotation: %w", err)
	}

	return next, nil
}

func (r *Repository) Revoke(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1`, id)

	return err
}
