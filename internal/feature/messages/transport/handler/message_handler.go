// Package handler はmessagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"whisper_backend/internal/api"
	authentity "whisper_backend/internal/feature/auth/domain/entity"
	"whisper_backend/internal/feature/messages/domain/entity"
	"whisper_backend/internal/feature/messages/transport/http/dto"
	"whisper_backend/internal/feature/messages/usecase"
	jwtmw "whisper_backend/internal/platform/jwt"
)

// MessageUsecase はメッセージ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type MessageUsecase interface {
	// Send は匿名メッセージを対象ユーザーに追加します。
	Send(ctx context.Context, username, content string) error
	// List は所有者のメッセージをCreatedAt降順で返します。
	List(ctx context.Context, ownerID uint) ([]entity.Message, error)
	// Delete は所有者のコレクションから指定IDのメッセージを削除します。
	Delete(ctx context.Context, ownerID, messageID uint) error
	// AcceptanceState はストアの現在の受信可否フラグを返します。
	AcceptanceState(ctx context.Context, ownerID uint) (bool, error)
	// SetAcceptanceState は受信可否フラグを更新し、更新後のユーザーを返します。
	SetAcceptanceState(ctx context.Context, ownerID uint, accepting bool) (*authentity.User, error)
}

// MessageHandler はメッセージ操作のHTTPリクエストを処理します。
type MessageHandler struct {
	messages MessageUsecase
}

// NewMessageHandler はMessageHandlerの新しいインスタンスを生成します。
func NewMessageHandler(messages MessageUsecase) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// ownerID はJWTミドルウェアが設定した認証済みユーザーIDを取得します。
func ownerID(c *gin.Context) (uint, bool) {
	id := c.GetUint(jwtmw.ContextUserID)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, api.Fail("not authenticated"))
		return 0, false
	}
	return id, true
}

// Send は匿名メッセージ送信APIエンドポイントを処理します（認証不要）。
// - 対象ユーザーが存在しない場合は404
// - 受信ゲートが閉じている場合は403（メッセージは保存されない）
// - 成功時は201
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("send message validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	if err := h.messages.Send(c.Request.Context(), req.Username, req.Content); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Fail("user not found"))
		case errors.Is(err, usecase.ErrNotAcceptingMessages):
			c.JSON(http.StatusForbidden, api.Fail("user is not accepting messages"))
		case errors.Is(err, usecase.ErrEmptyContent), errors.Is(err, usecase.ErrContentTooLong):
			c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		default:
			slog.Error("send message failed", "error", err, "username", req.Username)
			c.JSON(http.StatusInternalServerError, api.Fail("internal server error"))
		}
		return
	}
	c.JSON(http.StatusCreated, api.OK("message sent successfully"))
}

// List は受信メッセージ一覧APIエンドポイントを処理します（認証必須）。
// メッセージは常にCreatedAt降順で返され、空の一覧も正常な結果です。
func (h *MessageHandler) List(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}
	messages, err := h.messages.List(c.Request.Context(), id)
	if err != nil {
		slog.Error("list messages failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.Fail("internal server error"))
		return
	}
	res := make([]dto.MessageRes, len(messages))
	for i, m := range messages {
		res[i] = dto.MessageResFromEntity(m)
	}
	c.JSON(http.StatusOK, api.OKData("messages retrieved", res))
}

// Delete はメッセージ削除APIエンドポイントを処理します（認証必須）。
// 所有者のコレクションにIDが存在しない場合は404を返します（再削除も同様）。
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid message id"))
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id, uint(messageID)); err != nil {
		if errors.Is(err, usecase.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, api.Fail("message not found or already deleted"))
			return
		}
		slog.Error("delete message failed", "error", err, "user_id", id, "message_id", messageID)
		c.JSON(http.StatusInternalServerError, api.Fail("internal server error"))
		return
	}
	c.JSON(http.StatusOK, api.OK("message deleted successfully"))
}

// GetAcceptance は受信可否フラグ取得APIエンドポイントを処理します（認証必須）。
// トークンクレームではなくストアの現在値を返します。
func (h *MessageHandler) GetAcceptance(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}
	accepting, err := h.messages.AcceptanceState(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Fail("user not found"))
			return
		}
		slog.Error("get acceptance state failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.Fail("internal server error"))
		return
	}
	c.JSON(http.StatusOK, api.OKData("acceptance state retrieved", gin.H{
		"isAcceptingMessages": accepting,
	}))
}

// SetAcceptance は受信可否フラグ更新APIエンドポイントを処理します（認証必須）。
// 成功時は更新後のユーザーを返します。
func (h *MessageHandler) SetAcceptance(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.AcceptMessagesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	user, err := h.messages.SetAcceptanceState(c.Request.Context(), id, *req.AcceptMessages)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Fail("unable to find user to update message acceptance status"))
			return
		}
		slog.Error("set acceptance state failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.Fail("error updating message acceptance status"))
		return
	}
	c.JSON(http.StatusOK, api.OKData("message acceptance status updated successfully",
		dto.UserResFromEntity(user)))
}
