package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID            int64      `db:"id" json:"id"`
	Username      string     `db:"username" json:"username"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Role          string     `db:"role" json:"role"`
	Email         *string    `db:"email" json:"email"`
	FullName      *string    `db:"full_name" json:"full_name"`
	LicenseNumber *string    `db:"license_number" json:"license_number"`
	Department    *string    `db:"department" json:"department"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	LastLogin     *time.Time `db:"last_login" json:"last_login"`
}
