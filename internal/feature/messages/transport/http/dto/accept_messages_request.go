package dto

// AcceptMessagesReq represents the request body for toggling the
// message-acceptance flag. A pointer is used so that false binds
// as a valid value.
type AcceptMessagesReq struct {
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}
