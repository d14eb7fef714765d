package models

import "time"

// User is the database representation of a user row.
type User struct {
	UserID        string     `db:"user_id"`
	Name          string     `db:"name"`
	Username      string     `db:"username"`
	PasswordHash  string     `db:"password_hash"`
	Role          string     `db:"role"`
	CreatedAt     time.Time  `db:"created_at"`
	CreatedBy     string     `db:"created_by"`
	LastUpdatedAt time.Time  `db:"last_updated_at"`
	LastUpdatedBy string     `db:"last_updated_by"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
