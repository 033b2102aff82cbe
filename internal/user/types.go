package user

import (
	"database/sql"
	"time"
)

// store handles all database operations for users.
type store struct {
	db *sql.DB
}

// Role is a user's permission level in the club.
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// User is a registered club member.
type User struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
