package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "whisper_backend/internal/feature/auth/domain/entity"
	"whisper_backend/internal/feature/messages/domain/entity"
	"whisper_backend/internal/feature/messages/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// Messages reference the users table
	err = db.AutoMigrate(&authentity.User{}, &entity.Message{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser creates a recipient user for the messages under test.
func seedUser(t *testing.T, db *gorm.DB, username string) *authentity.User {
	t.Helper()

	user := &authentity.User{
		Username:            username,
		Email:               username + "@example.com",
		Password:            "hashed_password",
		IsVerified:          true,
		IsAcceptingMessages: true,
	}
	err := db.Create(user).Error
	require.NoError(t, err, "failed to seed user")

	return user
}

// seedMessage inserts a message with an explicit timestamp.
func seedMessage(t *testing.T, db *gorm.DB, userID uint, content string, createdAt time.Time) *entity.Message {
	t.Helper()

	msg := &entity.Message{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	err := db.Omit("User").Create(msg).Error
	require.NoError(t, err, "failed to seed message")

	return msg
}

func TestNewMessageMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewMessageMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestMessageMySQL_Append(t *testing.T) {
	t.Run("successful append", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")

		msg := &entity.Message{
			UserID:    user.ID,
			Content:   "hello",
			CreatedAt: time.Now(),
		}

		err := repo.Append(context.Background(), msg)

		assert.NoError(t, err, "failed to append message")
		assert.NotZero(t, msg.ID, "ID is not set")
	})
}

func TestMessageMySQL_ListByOwner(t *testing.T) {
	t.Run("messages are returned newest first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")

		base := time.Now().Truncate(time.Second)
		seedMessage(t, db, user.ID, "oldest", base.Add(-2*time.Hour))
		seedMessage(t, db, user.ID, "middle", base.Add(-1*time.Hour))
		seedMessage(t, db, user.ID, "newest", base)

		messages, err := repo.ListByOwner(context.Background(), user.ID)

		require.NoError(t, err, "failed to list messages")
		require.Len(t, messages, 3)
		assert.Equal(t, "newest", messages[0].Content)
		assert.Equal(t, "middle", messages[1].Content)
		assert.Equal(t, "oldest", messages[2].Content)
	})

	t.Run("equal timestamps break ties by ID descending", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")

		at := time.Now().Truncate(time.Second)
		first := seedMessage(t, db, user.ID, "first insert", at)
		second := seedMessage(t, db, user.ID, "second insert", at)

		messages, err := repo.ListByOwner(context.Background(), user.ID)

		require.NoError(t, err, "failed to list messages")
		require.Len(t, messages, 2)
		assert.Equal(t, second.ID, messages[0].ID, "later insert should come first")
		assert.Equal(t, first.ID, messages[1].ID)
	})

	t.Run("only the owner's messages are returned", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		alice := seedUser(t, db, "alice")
		bob := seedUser(t, db, "bob")

		seedMessage(t, db, alice.ID, "for alice", time.Now())
		seedMessage(t, db, bob.ID, "for bob", time.Now())

		messages, err := repo.ListByOwner(context.Background(), alice.ID)

		require.NoError(t, err, "failed to list messages")
		require.Len(t, messages, 1)
		assert.Equal(t, "for alice", messages[0].Content)
	})

	t.Run("empty collection returns an empty slice, not an error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")

		messages, err := repo.ListByOwner(context.Background(), user.ID)

		assert.NoError(t, err)
		assert.NotNil(t, messages, "expected an empty slice, not nil")
		assert.Len(t, messages, 0)
	})
}

func TestMessageMySQL_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")
		msg := seedMessage(t, db, user.ID, "to be deleted", time.Now())

		err := repo.Delete(context.Background(), user.ID, msg.ID)
		require.NoError(t, err, "failed to delete message")

		var count int64
		db.Model(&entity.Message{}).Where("id = ?", msg.ID).Count(&count)
		assert.Equal(t, int64(0), count, "message should be deleted")
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")

		err := repo.Delete(context.Background(), user.ID, 999)

		assert.ErrorIs(t, err, usecase.ErrMessageNotFound)
	})

	t.Run("repeated delete of the same ID also returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		user := seedUser(t, db, "alice")
		msg := seedMessage(t, db, user.ID, "once", time.Now())

		require.NoError(t, repo.Delete(context.Background(), user.ID, msg.ID))

		err := repo.Delete(context.Background(), user.ID, msg.ID)

		assert.ErrorIs(t, err, usecase.ErrMessageNotFound)
	})

	t.Run("cannot delete another user's message", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMessageMySQL(db)
		alice := seedUser(t, db, "alice")
		bob := seedUser(t, db, "bob")
		msg := seedMessage(t, db, alice.ID, "alice's message", time.Now())

		err := repo.Delete(context.Background(), bob.ID, msg.ID)

		assert.ErrorIs(t, err, usecase.ErrMessageNotFound)

		var count int64
		db.Model(&entity.Message{}).Where("id = ?", msg.ID).Count(&count)
		assert.Equal(t, int64(1), count, "message must remain untouched")
	})
}
