package model

import "time"

// User represents an account record as stored in the `users` table.  Each
// field corresponds to a column.  The struct carries no json tags because
// handlers expose dedicated response types; the password hash must never
// appear in a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  Role         – account role from the closed Role set.
//  IsVerified   – whether the account passed verification.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	IsVerified   bool      // users.is_verified
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
