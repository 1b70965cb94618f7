// Package handler はsuggestionsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper_backend/internal/api"
)

// SuggestUsecase はメッセージ候補生成のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type SuggestUsecase interface {
	// SuggestMessages は匿名メッセージの候補質問リストを生成します。
	SuggestMessages(ctx context.Context) ([]string, error)
}

// SuggestHandler はメッセージ候補生成のHTTPリクエストを処理します。
type SuggestHandler struct {
	suggest SuggestUsecase
}

// NewSuggestHandler はSuggestHandlerの新しいインスタンスを生成します。
func NewSuggestHandler(suggest SuggestUsecase) *SuggestHandler {
	return &SuggestHandler{suggest: suggest}
}

// SuggestMessages はメッセージ候補生成APIエンドポイントを処理します。
// 候補はあくまで参考情報であり、メッセージ送受信のワークフローから独立しています。
func (h *SuggestHandler) SuggestMessages(c *gin.Context) {
	suggestions, err := h.suggest.SuggestMessages(c.Request.Context())
	if err != nil {
		slog.Error("suggestion generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Fail("error generating suggestions"))
		return
	}
	c.JSON(http.StatusOK, api.OKData("suggestions generated", gin.H{
		"suggestions": suggestions,
	}))
}
