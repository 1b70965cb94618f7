package dto

import (
	"time"

	authentity "whisper_backend/internal/feature/auth/domain/entity"
	"whisper_backend/internal/feature/messages/domain/entity"
)

// MessageRes represents one message in API responses.
type MessageRes struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResFromEntity converts a message entity to its response form.
func MessageResFromEntity(m entity.Message) MessageRes {
	return MessageRes{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// UserRes represents the owner in acceptance-toggle responses.
// Credentials and verification codes are never exposed.
type UserRes struct {
	ID                  uint   `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	IsVerified          bool   `json:"isVerified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// UserResFromEntity converts a user entity to its response form.
func UserResFromEntity(u *authentity.User) UserRes {
	return UserRes{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		IsVerified:          u.IsVerified,
		IsAcceptingMessages: u.IsAcceptingMessages,
	}
}
