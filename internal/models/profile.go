package models

import "time"

// Profile is a row of the profiles table.
type Profile struct {
	UserID       string     `db:"user_id"`
	Email        string     `db:"email"`
	FullName     string     `db:"full_name"`
	Phone        string     `db:"phone"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	PasswordHash string     `db:"password_hash"`
	LastSignInAt *time.Time `db:"last_sign_in_at"` // Nullable
	AuditFields
}
