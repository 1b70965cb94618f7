// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"whisper_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6

	// minUsernameLength / maxUsernameLength はユーザー名の長さ制限です。
	minUsernameLength = 2
	maxUsernameLength = 20

	// verifyCodeDigits は検証コードの桁数です。
	verifyCodeDigits = 6

	// verifyCodeTTL は検証コードの有効期間です。
	verifyCodeTTL = time.Hour

	// refreshTokenBytes はリフレッシュトークンの乱数バイト長です（hex 64文字）。
	refreshTokenBytes = 32

	// maxSessionsPerUser はユーザーごとの同時セッション数の上限です。
	maxSessionsPerUser = 5
)

// usernamePattern はユーザー名に許可される文字パターンです（英数字とアンダースコア）。
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名またはメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIdentifier はメールアドレスまたはユーザー名に一致するユーザーを取得します。
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// クレーム（ID・ユーザー名・検証フラグ・受信フラグ）はトークン発行時点のスナップショットです。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みアクセストークンを生成します。
	GenerateToken(userID uint, username string, isVerified, isAcceptingMessages bool) (string, error)

	// TTL はアクセストークンの有効期間を返します。
	TTL() time.Duration
}

// VerificationMailer は検証コードメールの送信を抽象化します。
type VerificationMailer interface {
	// SendVerificationEmail は検証コードを記載したメールを送信します。
	SendVerificationEmail(ctx context.Context, email, username, code string) error
}

// TokenPair はログイン・リフレッシュ成功時に返されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenGenerator
	mailer     VerificationMailer
	sessionTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator,
	mailer VerificationMailer, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		mailer:     mailer,
		sessionTTL: sessionTTL,
	}
}

// ValidateUsername はユーザー名が形式要件を満たしているかチェックします。
// 2〜20文字の英数字とアンダースコアのみ許可されます。
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength {
		return fmt.Errorf("username must be at least %d characters long", minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters long", maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("username may only contain letters, digits and underscores")
	}
	return nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// generateVerifyCode は暗号学的乱数で数字のみの検証コードを生成します。
func generateVerifyCode() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(verifyCodeDigits), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", verifyCodeDigits, n), nil
}

// newRefreshToken は64文字のhexリフレッシュトークンを生成します。
func newRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Signup は未検証状態の新規ユーザーを登録し、検証コードをメールで送信します。
// 既に検証済みのユーザー名はErrUsernameAlreadyExists、検証済みのメールアドレスは
// ErrEmailAlreadyExistsを返します。未検証のメールアドレスが既に存在する場合は、
// パスワードと検証コードを差し替えて再利用します（サインアップのやり直し）。
func (u *authUsecase) Signup(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 検証済みユーザーが同じユーザー名を既に保持していないかチェック
	if existing, err := u.users.FindByUsername(ctx, username); err == nil {
		if existing.IsVerified {
			return nil, ErrUsernameAlreadyExists
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := generateVerifyCode()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(verifyCodeTTL)

	var user *entity.User
	existingByEmail, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existingByEmail.IsVerified:
		return nil, ErrEmailAlreadyExists
	case err == nil:
		// 未検証のメールアドレス: パスワードとコードを差し替えて再利用
		existingByEmail.Password = string(hashed)
		existingByEmail.VerifyCode = code
		existingByEmail.VerifyCodeExpiresAt = expiry
		if err := u.users.Update(ctx, existingByEmail); err != nil {
			return nil, err
		}
		user = existingByEmail
	case errors.Is(err, ErrUserNotFound):
		user = &entity.User{
			Username:            username,
			Email:               email,
			Password:            string(hashed),
			VerifyCode:          code,
			VerifyCodeExpiresAt: expiry,
			IsAcceptingMessages: true,
		}
		if err := u.users.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	// ユーザーは既に永続化済み。メール送信失敗はそのまま呼び出し元に伝播する。
	if err := u.mailer.SendVerificationEmail(ctx, user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にアクセス/リフレッシュトークンの組を返します。
// 未検証ユーザーはパスワードの正否に関わらずErrUserNotVerifiedで失敗します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, identifier, password, userAgent, ipAddress string) (*TokenPair, error) {
	// メールアドレスまたはユーザー名でユーザーを検索
	user, err := u.users.FindByIdentifier(ctx, identifier)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// 検証状態のチェックはパスワードの正否より優先される
	if !user.IsVerified {
		return nil, ErrUserNotVerified
	}
	if compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Refresh はリフレッシュトークンを検証し、トークンの組を再発行します。
// ユーザーレコードを再読込するため、クレームはこの時点の値に更新されます。
// 古いセッションは失効させ、新しいセッションにローテーションします。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	sess, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if sess.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if sess.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, sess.ID); err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Logout はリフレッシュトークンに対応するセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// issueTokens はアクセストークンと新規セッション（リフレッシュトークン）を発行します。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*TokenPair, error) {
	// セッション数の上限に達している場合、最古のセッションを削除する
	if count, err := u.sessions.CountByUserID(ctx, user.ID); err == nil && count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	access, err := u.tokens.GenerateToken(user.ID, user.Username, user.IsVerified, user.IsAcceptingMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.tokens.TTL().Seconds()),
	}, nil
}

// VerifyCode は検証コードを照合し、一致かつ未失効の場合にユーザーを検証済みにします。
// コード不一致はErrInvalidVerifyCode、失効はErrVerifyCodeExpiredを返し、状態は変更しません。
func (u *authUsecase) VerifyCode(ctx context.Context, username, code string) error {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	// コードの照合を失効チェックより先に行う
	if user.VerifyCode == "" || user.VerifyCode != code {
		return ErrInvalidVerifyCode
	}
	// 失効は有効期限ちょうどの時刻を含む（expiry以降は無効）
	if user.VerifyCodeExpired(time.Now()) {
		return ErrVerifyCodeExpired
	}

	user.IsVerified = true
	return u.users.Update(ctx, user)
}

// CheckUsername はユーザー名が利用可能かどうかを返します。
// 検証済みユーザーが保持している場合のみ「使用中」と見なします。
func (u *authUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return true, nil
		}
		return false, err
	}
	return !user.IsVerified, nil
}
