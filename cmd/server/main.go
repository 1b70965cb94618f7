package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"whisper_backend/internal/app/di"
	"whisper_backend/internal/app/router"
	authadapters "whisper_backend/internal/feature/auth/adapters"
	authhandler "whisper_backend/internal/feature/auth/transport/handler"
	authusecase "whisper_backend/internal/feature/auth/usecase"
	messageadapters "whisper_backend/internal/feature/messages/adapters"
	messagehandler "whisper_backend/internal/feature/messages/transport/handler"
	messageusecase "whisper_backend/internal/feature/messages/usecase"
	suggesthandler "whisper_backend/internal/feature/suggestions/transport/handler"
	suggestusecase "whisper_backend/internal/feature/suggestions/usecase"
	platformdb "whisper_backend/internal/platform/db"
	jwtmw "whisper_backend/internal/platform/jwt"
	platformredis "whisper_backend/internal/platform/redis"
	"whisper_backend/internal/shared/ratelimiter"
)

const (
	accessTokenTTL  = 15 * time.Minute
	sessionTTL      = 30 * 24 * time.Hour
	suggestCacheTTL = 10 * time.Minute

	// Gemini呼び出しの上限（1分あたり）
	suggestRateLimit = 10
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定する）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using environment variables.")
	}

	ctx := context.Background()

	// db
	store := platformdb.NewStore(platformdb.ConfigFromEnv())
	db, err := store.Connect()
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	messageRepo := messageadapters.NewMessageMySQL(db)

	// 外部コラボレーター
	tokenGen := jwtmw.NewGenerator(secret, accessTokenTTL)
	mailer := di.NewMailer()
	suggester := di.NewSuggester(ctx, rdb, suggestCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen, mailer, sessionTTL)
	messageUC := messageusecase.NewMessageUsecase(messageRepo, userRepo)
	suggestUC := suggestusecase.NewSuggestUsecase(suggester,
		ratelimiter.NewRateLimiter(suggestRateLimit, time.Minute))

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	messageH := messagehandler.NewMessageHandler(messageUC)
	suggestH := suggesthandler.NewSuggestHandler(suggestUC)

	// ルータ生成
	router := router.NewRouter(authH, messageH, suggestH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
