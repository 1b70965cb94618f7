// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the system.
// It carries authentication credentials, the email-verification state and
// the message-acceptance preference consulted by the messages feature.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the public handle shown on the profile link.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:20;not null"`

	// Email is the user's email address used for verification and login.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// IsVerified reports whether the email address has been proven via
	// the verification code. Unverified users cannot log in.
	IsVerified bool `gorm:"not null;default:false"`

	// VerifyCode is the short-lived numeric code mailed at signup.
	VerifyCode string `gorm:"size:6"`

	// VerifyCodeExpiresAt is the instant the verification code stops
	// being valid. The code is invalid at or after this time.
	VerifyCodeExpiresAt time.Time

	// IsAcceptingMessages gates inbound anonymous messages.
	// New accounts accept messages by default.
	IsAcceptingMessages bool `gorm:"not null;default:true"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// VerifyCodeExpired reports whether the verification code has expired
// at the given instant. Expiry is exclusive of validity.
func (u *User) VerifyCodeExpired(now time.Time) bool {
	return !now.Before(u.VerifyCodeExpiresAt)
}
