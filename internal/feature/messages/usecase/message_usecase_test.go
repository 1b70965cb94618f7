package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	authentity "whisper_backend/internal/feature/auth/domain/entity"
	authusecase "whisper_backend/internal/feature/auth/usecase"
	"whisper_backend/internal/feature/messages/domain/entity"
)

// mockMessageRepository is a mock implementation of the MessageRepository interface.
type mockMessageRepository struct {
	AppendFunc      func(ctx context.Context, message *entity.Message) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]entity.Message, error)
	DeleteFunc      func(ctx context.Context, ownerID, messageID uint) error
}

func (m *mockMessageRepository) Append(ctx context.Context, message *entity.Message) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Message, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []entity.Message{}, nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, ownerID, messageID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, messageID)
	}
	return nil
}

// mockUserReader is a mock implementation of the UserReader interface.
type mockUserReader struct {
	FindByIDFunc       func(ctx context.Context, id uint) (*authentity.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*authentity.User, error)
	UpdateFunc         func(ctx context.Context, user *authentity.User) error
}

func (m *mockUserReader) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, authusecase.ErrUserNotFound
}

func (m *mockUserReader) FindByUsername(ctx context.Context, username string) (*authentity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, authusecase.ErrUserNotFound
}

func (m *mockUserReader) Update(ctx context.Context, user *authentity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func acceptingUser() *authentity.User {
	return &authentity.User{
		ID:                  1,
		Username:            "alice",
		IsVerified:          true,
		IsAcceptingMessages: true,
	}
}

func TestMessageUsecase_Send(t *testing.T) {
	t.Run("open gate appends the message with a server timestamp", func(t *testing.T) {
		var appended *entity.Message
		messages := &mockMessageRepository{
			AppendFunc: func(ctx context.Context, m *entity.Message) error {
				appended = m
				return nil
			},
		}
		users := &mockUserReader{
			FindByUsernameFunc: func(ctx context.Context, username string) (*authentity.User, error) {
				return acceptingUser(), nil
			},
		}

		uc := NewMessageUsecase(messages, users)
		err := uc.Send(context.Background(), "alice", "hello")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appended == nil {
			t.Fatal("message was not appended")
		}
		if appended.UserID != 1 || appended.Content != "hello" {
			t.Errorf("unexpected message: %+v", appended)
		}
		if appended.CreatedAt.IsZero() {
			t.Error("CreatedAt must be stamped by the server")
		}
	})

	t.Run("closed gate rejects without touching storage", func(t *testing.T) {
		messages := &mockMessageRepository{
			AppendFunc: func(ctx context.Context, m *entity.Message) error {
				t.Error("Append must not be called when the gate is closed")
				return nil
			},
		}
		users := &mockUserReader{
			FindByUsernameFunc: func(ctx context.Context, username string) (*authentity.User, error) {
				u := acceptingUser()
				u.IsAcceptingMessages = false
				return u, nil
			},
		}

		uc := NewMessageUsecase(messages, users)
		err := uc.Send(context.Background(), "alice", "hello")

		if !errors.Is(err, ErrNotAcceptingMessages) {
			t.Errorf("expected ErrNotAcceptingMessages, got: %v", err)
		}
	})

	t.Run("unknown recipient", func(t *testing.T) {
		uc := NewMessageUsecase(&mockMessageRepository{}, &mockUserReader{})
		err := uc.Send(context.Background(), "ghost", "hello")

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		users := &mockUserReader{
			FindByUsernameFunc: func(ctx context.Context, username string) (*authentity.User, error) {
				t.Error("lookup must not happen for invalid content")
				return acceptingUser(), nil
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		err := uc.Send(context.Background(), "alice", "")

		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("expected ErrEmptyContent, got: %v", err)
		}
	})

	t.Run("content over the limit", func(t *testing.T) {
		users := &mockUserReader{
			FindByUsernameFunc: func(ctx context.Context, username string) (*authentity.User, error) {
				return acceptingUser(), nil
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		err := uc.Send(context.Background(), "alice", strings.Repeat("x", MaxContentLength+1))

		if !errors.Is(err, ErrContentTooLong) {
			t.Errorf("expected ErrContentTooLong, got: %v", err)
		}
	})

	t.Run("multibyte content is counted in runes", func(t *testing.T) {
		users := &mockUserReader{
			FindByUsernameFunc: func(ctx context.Context, username string) (*authentity.User, error) {
				return acceptingUser(), nil
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		// 300 runes, well over 300 bytes
		err := uc.Send(context.Background(), "alice", strings.Repeat("あ", MaxContentLength))

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMessageUsecase_Delete(t *testing.T) {
	t.Run("missing id propagates not found", func(t *testing.T) {
		messages := &mockMessageRepository{
			DeleteFunc: func(ctx context.Context, ownerID, messageID uint) error {
				return ErrMessageNotFound
			},
		}

		uc := NewMessageUsecase(messages, &mockUserReader{})
		err := uc.Delete(context.Background(), 1, 99)

		if !errors.Is(err, ErrMessageNotFound) {
			t.Errorf("expected ErrMessageNotFound, got: %v", err)
		}
	})

	t.Run("successful delete", func(t *testing.T) {
		messages := &mockMessageRepository{
			DeleteFunc: func(ctx context.Context, ownerID, messageID uint) error {
				if ownerID != 1 || messageID != 42 {
					t.Errorf("unexpected arguments: owner=%d message=%d", ownerID, messageID)
				}
				return nil
			},
		}

		uc := NewMessageUsecase(messages, &mockUserReader{})
		if err := uc.Delete(context.Background(), 1, 42); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMessageUsecase_AcceptanceState(t *testing.T) {
	t.Run("reads the live store value", func(t *testing.T) {
		users := &mockUserReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
				u := acceptingUser()
				u.IsAcceptingMessages = false
				return u, nil
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		accepting, err := uc.AcceptanceState(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if accepting {
			t.Error("expected accepting=false from the store")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewMessageUsecase(&mockMessageRepository{}, &mockUserReader{})
		_, err := uc.AcceptanceState(context.Background(), 404)

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})
}

func TestMessageUsecase_SetAcceptanceState(t *testing.T) {
	t.Run("persists and returns the updated user", func(t *testing.T) {
		stored := acceptingUser()
		updated := false
		users := &mockUserReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
				return stored, nil
			},
			UpdateFunc: func(ctx context.Context, user *authentity.User) error {
				updated = true
				return nil
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		user, err := uc.SetAcceptanceState(context.Background(), 1, false)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated {
			t.Error("expected the change to be persisted")
		}
		if user.IsAcceptingMessages {
			t.Error("expected accepting=false on the returned user")
		}
	})

	t.Run("update failure surfaces", func(t *testing.T) {
		users := &mockUserReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
				return acceptingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, user *authentity.User) error {
				return errors.New("connection lost")
			},
		}

		uc := NewMessageUsecase(&mockMessageRepository{}, users)
		if _, err := uc.SetAcceptanceState(context.Background(), 1, false); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}
