// Package dto はmessagesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SendMessageReq represents the request body for the anonymous
// POST /api/messages endpoint.
type SendMessageReq struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}
