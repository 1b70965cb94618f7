package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "whisper_backend/internal/feature/auth/transport/handler"
	messagehandler "whisper_backend/internal/feature/messages/transport/handler"
	suggesthandler "whisper_backend/internal/feature/suggestions/transport/handler"
	"whisper_backend/internal/platform/http/handler"
	jwtmw "whisper_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, messages *messagehandler.MessageHandler,
	suggest *suggesthandler.SuggestHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドからのアクセスを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 認証不要のAPI
	api := r.Group("/api")
	{
		// 新規ユーザー登録（検証コードのメール送信を含む）
		api.POST("/auth/signup", authHandler.Signup)
		// ログイン（アクセス/リフレッシュトークン発行）
		api.POST("/auth/login", authHandler.Login)
		// トークン再発行
		api.POST("/auth/refresh", authHandler.Refresh)
		// ログアウト（セッション失効）
		api.POST("/auth/logout", authHandler.Logout)
		// アカウント検証
		api.POST("/auth/verify", authHandler.VerifyCode)
		// ユーザー名の利用可否チェック
		api.GET("/username-check", authHandler.CheckUsername)
		// 匿名メッセージ送信
		api.POST("/messages", messages.Send)
	}

	// 認証必須のAPI
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/api")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/messages", messages.List)
		auth.DELETE("/messages/:id", messages.Delete)
		auth.GET("/accept-messages", messages.GetAcceptance)
		auth.POST("/accept-messages", messages.SetAcceptance)
		auth.POST("/suggest-messages", suggest.SuggestMessages)
	}

	// ページルート
	// jwtmw.PageGuard() がトークンの有無に応じてリダイレクトを判断する
	pages := r.Group("/")
	pages.Use(jwtmw.PageGuard())
	{
		pages.GET("/", handler.Page("home"))
		pages.GET("/sign-in", handler.Page("sign-in"))
		pages.GET("/sign-up", handler.Page("sign-up"))
		pages.GET("/verify/:username", handler.Page("verify"))
		pages.GET("/dashboard", handler.Page("dashboard"))
		pages.GET("/u/:username", handler.Page("profile"))
	}

	return r
}
