package auth

import "errors"

var (
	// ErrMissingToken is returned when no Authorization header is present.
	ErrMissingToken = errors.New("authorization header missing")

	// ErrMalformedHeader is returned when the Authorization header does
	// not use the Bearer scheme.
	ErrMalformedHeader = errors.New("authorization header must use Bearer scheme")

	// ErrInvalidToken covers forged signatures and structurally broken
	// tokens alike; callers cannot distinguish the two.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token's signature is good but
	// its expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidCredentials is returned when username/password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInsecure is returned when a blank-password account
	// attempts to authenticate. The account is locked out of login until
	// an administrator assigns a real password.
	ErrAccountInsecure = errors.New("account not secure, password reset required")

	// ErrPasswordPolicy is returned at registration when the password
	// fails the strength requirements.
	ErrPasswordPolicy = errors.New("password must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number, and a special character")
)
