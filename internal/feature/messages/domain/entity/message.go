// Package entity defines the domain entities for the messages feature.
package entity

import (
	"time"

	authentity "whisper_backend/internal/feature/auth/domain/entity"
)

// Message represents one anonymous message delivered to a user's profile.
// Messages are strictly owned by a single user: the identifier is only
// meaningful together with the owner, and deleting the owner deletes
// all of their messages.
type Message struct {
	// ID is the identifier used for targeted deletion within the
	// owner's collection.
	ID uint `gorm:"primaryKey"`

	// UserID is the owning user. Messages never reference other users.
	UserID uint `gorm:"index;not null"`

	// User declares the foreign key so the schema cascades message
	// deletion when the owning user is deleted.
	User authentity.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Content is the free-text body submitted by the anonymous sender.
	Content string `gorm:"type:text;not null"`

	// CreatedAt is assigned by the server at append time and drives
	// the newest-first listing order.
	CreatedAt time.Time
}
