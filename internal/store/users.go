package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const userCols = `id, email, password_hash, display_name, email_verified, created_at, updated_at`

// CreateUser inserts a new account. The email is lowercased before storage.
// Returns ErrDuplicateEmail when the email is already registered.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name)
		 VALUES ($1, $2, $3)
		 RETURNING `+userCols,
		email, passwordHash, displayName)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// GetUserByEmail looks up an account by email (case-insensitive).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	row := s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "getting user by email")
	}
	return u, nil
}

// GetUser looks up an account by ID.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "getting user")
	}
	return u, nil
}

// MarkEmailVerified records that the user confirmed their email address.
func (s *Store) MarkEmailVerified(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = now() WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("marking email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash for an account.
func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE email = $1`,
		email, passwordHash)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.logger.Info("password updated", "email", email)
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
