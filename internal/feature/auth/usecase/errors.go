// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by identifier, username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when a verified user already holds the requested username.
	ErrUsernameAlreadyExists = errors.New("username already taken")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotVerified is returned when an unverified user attempts to log in.
	// It takes precedence over password correctness.
	ErrUserNotVerified = errors.New("account is not verified")

	// ErrInvalidCredentials is returned when the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid identifier or password")

	// ErrInvalidVerifyCode is returned when the submitted verification code does not match.
	// The stored state is left untouched.
	ErrInvalidVerifyCode = errors.New("invalid verification code")

	// ErrVerifyCodeExpired is returned when the verification code has expired.
	// The caller must sign up again to obtain a fresh code.
	ErrVerifyCodeExpired = errors.New("verification code expired, please sign up again to get a new code")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned when a refresh token is invalid or malformed.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
