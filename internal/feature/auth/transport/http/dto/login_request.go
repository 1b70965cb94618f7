package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
// Identifierはメールアドレスまたはユーザー名のどちらでも構いません。
type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}
