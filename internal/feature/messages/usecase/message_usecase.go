// Package usecase はmessagesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	authentity "whisper_backend/internal/feature/auth/domain/entity"
	authusecase "whisper_backend/internal/feature/auth/usecase"
	"whisper_backend/internal/feature/messages/domain/entity"
)

const (
	// MaxContentLength はメッセージ本文の最大文字数（rune数）です。
	MaxContentLength = 300
)

// MessageRepository はメッセージエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type MessageRepository interface {
	// Append は新しいメッセージをストレージに追加します。
	Append(ctx context.Context, message *entity.Message) error

	// ListByOwner は指定ユーザーの全メッセージをCreatedAt降順で返します。
	// メッセージが存在しない場合は空のスライスを返します（エラーではありません）。
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Message, error)

	// Delete は指定ユーザーのコレクションからID一致のメッセージを1件削除します。
	// 一致するメッセージがない場合、ErrMessageNotFoundを返します。
	Delete(ctx context.Context, ownerID, messageID uint) error
}

// UserReader は受信ユーザーの読み取り・更新を抽象化します。
// 受信可否の判定はセッションクレームではなく、常にストアの現在値を参照します。
type UserReader interface {
	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*authentity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *authentity.User) error
}

// messageUsecase はメッセージ送受信と受信ゲートのビジネスロジックを実装します。
type messageUsecase struct {
	messages MessageRepository
	users    UserReader
}

// NewMessageUsecase はmessageUsecaseの新しいインスタンスを生成します。
func NewMessageUsecase(messages MessageRepository, users UserReader) *messageUsecase {
	return &messageUsecase{messages: messages, users: users}
}

// validateContent はメッセージ本文の形式要件をチェックします。
func validateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// Send は匿名メッセージを対象ユーザーに追加します。
// 受信ゲートは書き込み時点のストアの値を参照します。ゲートが閉じている場合、
// ErrNotAcceptingMessagesを返し、メッセージは一切保存されません。
func (u *messageUsecase) Send(ctx context.Context, username, content string) error {
	if err := validateContent(content); err != nil {
		return err
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// セッションクレームではなくストアの現在値を確認する
	if !user.IsAcceptingMessages {
		return ErrNotAcceptingMessages
	}

	msg := &entity.Message{
		UserID:    user.ID,
		Content:   content,
		CreatedAt: time.Now(), // サーバー側で付与
	}
	return u.messages.Append(ctx, msg)
}

// List は所有者のメッセージをCreatedAt降順（最新が先頭）で返します。
// 空のコレクションは正常な結果であり、エラーにはなりません。
func (u *messageUsecase) List(ctx context.Context, ownerID uint) ([]entity.Message, error) {
	return u.messages.ListByOwner(ctx, ownerID)
}

// Delete は所有者のコレクションから指定IDのメッセージを1件削除します。
// IDが存在しない場合はErrMessageNotFoundを返し、コレクションは変化しません。
// 既に削除済みのIDへの再削除も同様にErrMessageNotFoundを報告します。
func (u *messageUsecase) Delete(ctx context.Context, ownerID, messageID uint) error {
	return u.messages.Delete(ctx, ownerID, messageID)
}

// AcceptanceState はストアの現在の受信可否フラグを返します。
// トークンクレームの値は参照しません（クレームはログイン時点のスナップショット）。
func (u *messageUsecase) AcceptanceState(ctx context.Context, ownerID uint) (bool, error) {
	user, err := u.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return user.IsAcceptingMessages, nil
}

// SetAcceptanceState は受信可否フラグを更新し、更新後のユーザーを返します。
func (u *messageUsecase) SetAcceptanceState(ctx context.Context, ownerID uint, accepting bool) (*authentity.User, error) {
	user, err := u.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.IsAcceptingMessages = accepting
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
