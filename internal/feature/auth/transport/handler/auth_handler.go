// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper_backend/internal/api"
	"whisper_backend/internal/feature/auth/domain/entity"
	"whisper_backend/internal/feature/auth/transport/http/dto"
	"whisper_backend/internal/feature/auth/usecase"
)

// AccessTokenCookie はページ用ミドルウェアが参照するアクセストークンCookie名です。
const AccessTokenCookie = "access_token"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、検証コードをメールで送信します。
	Signup(ctx context.Context, username, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にトークンの組を返します。
	Login(ctx context.Context, identifier, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Refresh はリフレッシュトークンを検証し、トークンの組を再発行します。
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Logout はリフレッシュトークンに対応するセッションを失効させます。
	Logout(ctx context.Context, refreshToken string) error
	// VerifyCode は検証コードを照合し、ユーザーを検証済みにします。
	VerifyCode(ctx context.Context, username, code string) error
	// CheckUsername はユーザー名が利用可能かどうかを返します。
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名またはメールアドレスの重複時は409を返却
// - 成功時は201を返却（検証コードのメール送信を含む）
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	if err := usecase.ValidateUsername(req.Username); err != nil {
		slog.Warn("signup username rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	if _, err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		slog.Warn("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUsernameAlreadyExists),
			errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.Fail(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("signup failed"))
		}
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.OK("user registered, please verify your email"))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 識別子はメールアドレスまたはユーザー名です。成功時はトークンの組を返し、
// ページ用ミドルウェアのためにアクセストークンをCookieにも設定します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Warn("login failed", "error", err, "identifier", req.Identifier, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Fail("no user found with this identifier"))
		case errors.Is(err, usecase.ErrUserNotVerified):
			c.JSON(http.StatusForbidden, api.Fail("please verify your account before login"))
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, api.Fail("invalid identifier or password"))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("login failed"))
		}
		return
	}
	c.SetCookie(AccessTokenCookie, pair.AccessToken, int(pair.ExpiresIn), "/", "", false, true)
	slog.Info("user login successful", "identifier", req.Identifier, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OKData("login successful", dto.TokenRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}))
}

// Refresh はトークン再発行APIエンドポイントを処理します。
// 無効・失効・期限切れのリフレッシュトークンは401を返します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, api.Fail("invalid refresh token"))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("token refresh failed"))
		}
		return
	}
	c.SetCookie(AccessTokenCookie, pair.AccessToken, int(pair.ExpiresIn), "/", "", false, true)
	c.JSON(http.StatusOK, api.OKData("token refreshed", dto.TokenRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}))
}

// Logout はログアウトAPIエンドポイントを処理します。
// セッションを失効させ、アクセストークンCookieを削除します。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, api.Fail("invalid refresh token"))
			return
		}
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Fail("logout failed"))
		return
	}
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, api.OK("logged out"))
}

// VerifyCode はアカウント検証APIエンドポイントを処理します。
// - コード不一致または期限切れは400を返却（状態は変更されない）
// - ユーザーが存在しない場合は404を返却
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("verify validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("invalid request"))
		return
	}
	if err := h.auth.VerifyCode(c.Request.Context(), req.Username, req.Code); err != nil {
		slog.Warn("verification failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Fail("user not found"))
		case errors.Is(err, usecase.ErrInvalidVerifyCode),
			errors.Is(err, usecase.ErrVerifyCodeExpired):
			c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("verification failed"))
		}
		return
	}
	slog.Info("account verified", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("account verified successfully"))
}

// CheckUsername はユーザー名の利用可否チェックAPIエンドポイントを処理します。
// 形式が不正な場合は400、それ以外は200で利用可否メッセージを返します。
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if err := usecase.ValidateUsername(username); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}
	available, err := h.auth.CheckUsername(c.Request.Context(), username)
	if err != nil {
		slog.Error("username check failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, api.Fail("error checking username"))
		return
	}
	if !available {
		c.JSON(http.StatusOK, api.Fail("username already taken"))
		return
	}
	c.JSON(http.StatusOK, api.OK("username is available"))
}
