// Package adapters はmessagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"whisper_backend/internal/feature/messages/domain/entity"
	"whisper_backend/internal/feature/messages/usecase"
)

// messageMySQL はMessageRepositoryインターフェースのMySQL実装です。
type messageMySQL struct {
	db *gorm.DB
}

// messageMySQLがMessageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MessageRepository = (*messageMySQL)(nil)

// NewMessageMySQL は指定されたgorm.DB接続でmessageMySQLの新しいインスタンスを生成します。
func NewMessageMySQL(db *gorm.DB) *messageMySQL {
	return &messageMySQL{db: db}
}

// Append はメッセージをデータベースに追加します。
func (r *messageMySQL) Append(ctx context.Context, m *entity.Message) error {
	return r.db.WithContext(ctx).Omit("User").Create(m).Error
}

// ListByOwner は所有者のメッセージをCreatedAt降順で返します。
// 同時刻のメッセージはID降順で並べ、順序を全順序にします。
func (r *messageMySQL) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Message, error) {
	messages := []entity.Message{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete は所有者スコープでID一致のメッセージを1件削除します。
// 他ユーザーのメッセージIDを指定しても削除されず、ErrMessageNotFoundになります。
func (r *messageMySQL) Delete(ctx context.Context, ownerID, messageID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", messageID, ownerID).
		Delete(&entity.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrMessageNotFound
	}
	return nil
}
