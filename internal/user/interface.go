package user

import "context"

// UserStore is the club's user directory.
type UserStore interface {
	CreateUser(ctx context.Context, username string, role Role) (*User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, username string, role Role) (*User, error)
}
