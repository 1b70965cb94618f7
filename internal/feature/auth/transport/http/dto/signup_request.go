// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq represents the request body for the /api/auth/signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
// Username format is validated in the usecase layer (length and character set).
type SignupReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
