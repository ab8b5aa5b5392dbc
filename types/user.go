package types

import "time"

// User represents an account in the system.
// It contains identity, credential material, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the PBKDF2-derived representation of the
	// user's password. This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Salt is the per-user random value mixed into the password hash.
	// It is replaced together with PasswordHash on every password change.
	Salt string `json:"-" db:"salt"`

	// IsAdmin marks the elevated account class. Exactly one admin is
	// provisioned at first boot if none exists.
	IsAdmin bool `json:"is_admin" db:"is_admin"`

	// LastLogin is the timestamp of the most recent successful
	// authentication; nil until the user first logs in.
	LastLogin *time.Time `json:"last_login" db:"last_login"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
