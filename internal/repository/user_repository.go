package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/models"
)

// UserRepository provides database access for accounts and refresh tokens.
// Statements are written with ? and rebound for the active driver.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, last_login, created_at`

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.db.observe("users.find_by_email", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`)
	var user models.User
	if err := sqlx.GetContext(ctx, conn, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer r.db.observe("users.find_by_id", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`)
	var user models.User
	if err := sqlx.GetContext(ctx, conn, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. A taken email surfaces as ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer r.db.observe("users.create", time.Now())

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	conn := r.db.conn(ctx)
	query := conn.Rebind(`INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := conn.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt); err != nil {
		if classify(err) == uniqueViolation {
			return fmt.Errorf("create user: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateLastLogin updates the last_login timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	defer r.db.observe("users.update_last_login", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`)
	if _, err := conn.ExecContext(ctx, query, ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CreateRefreshToken persists a refresh token entry.
func (r *UserRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	defer r.db.observe("refresh_tokens.create", time.Now())

	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	conn := r.db.conn(ctx)
	query := conn.Rebind(`INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := conn.ExecContext(ctx, query, token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt, token.Revoked); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken returns a refresh token by token string.
func (r *UserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	defer r.db.observe("refresh_tokens.find", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`SELECT id, user_id, token, expires_at, created_at, revoked, revoked_at FROM refresh_tokens WHERE token = ? LIMIT 1`)
	var rt models.RefreshToken
	if err := sqlx.GetContext(ctx, conn, &rt, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rt, nil
}

// RevokeRefreshToken marks a live token as revoked. It reports false when the
// token was already revoked, so only one caller can consume a token.
func (r *UserRepository) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) (bool, error) {
	defer r.db.observe("refresh_tokens.revoke", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`UPDATE refresh_tokens SET revoked = ?, revoked_at = ? WHERE id = ? AND revoked = ?`)
	result, err := conn.ExecContext(ctx, query, true, revokedAt, id, false)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("revoke refresh token rows: %w", err)
	}
	return affected > 0, nil
}

// RevokeUserRefreshTokens revokes all live refresh tokens for a user.
func (r *UserRepository) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	defer r.db.observe("refresh_tokens.revoke_user", time.Now())

	conn := r.db.conn(ctx)
	query := conn.Rebind(`UPDATE refresh_tokens SET revoked = ?, revoked_at = ? WHERE user_id = ? AND revoked = ?`)
	if _, err := conn.ExecContext(ctx, query, true, time.Now().UTC(), userID, false); err != nil {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}
