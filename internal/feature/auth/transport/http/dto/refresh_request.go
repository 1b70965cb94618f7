package dto

// RefreshReq represents the request for token refresh and logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenRes represents the response carrying a freshly issued token pair.
type TokenRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
