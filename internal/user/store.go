package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/apperr"
)

// New creates a new UserStore.
func New(db *sql.DB) UserStore {
	return &store{
		db: db,
	}
}

// CreateUser registers a user. An empty role defaults to RoleUser.
func (s *store) CreateUser(ctx context.Context, username string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, role, created_at) VALUES (?, ?, ?)
		ON CONFLICT(username) DO NOTHING
	`, username, string(role), now.UnixMilli())
	if err != nil {
		return nil, apperr.Persistence("create user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.Persistence("create user", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("user %q: %w", username, apperr.ErrConflict)
	}

	log.Info("Registered user", "username", username, "role", role)
	return &User{Username: username, Role: role, CreatedAt: time.UnixMilli(now.UnixMilli()).UTC()}, nil
}

func (s *store) GetUser(ctx context.Context, username string) (*User, error) {
	var u User
	var role string
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `SELECT username, role, created_at FROM users WHERE username = ?`, username).
		Scan(&u.Username, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
		}
		return nil, apperr.Persistence("get user", err)
	}
	u.Role = Role(role)
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

func (s *store) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if user exists", "error", err, "username", username)
		return false, apperr.Persistence("check user", err)
	}
	return exists, nil
}

func (s *store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT username, role, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, apperr.Persistence("list users", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		var role string
		var createdAt int64
		if err := rows.Scan(&u.Username, &role, &createdAt); err != nil {
			return nil, apperr.Persistence("scan user", err)
		}
		u.Role = Role(role)
		u.CreatedAt = time.UnixMilli(createdAt).UTC()
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list users", err)
	}
	return users, nil
}

// UpdateRole changes the role of an existing user.
func (s *store) UpdateRole(ctx context.Context, username string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE users SET role = ? WHERE username = ?", string(role), username)
	if err != nil {
		return nil, apperr.Persistence("update role", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.Persistence("update role", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
	}
	log.Info("Updated user role", "username", username, "role", role)
	return s.GetUser(ctx, username)
}
