package dto

// VerifyReq represents the request body for the /api/auth/verify endpoint.
// The verification code is always six digits.
type VerifyReq struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
}
