// Package api defines the shared JSON response envelope for all endpoints.
package api

// Response is the envelope returned by every API endpoint.
// Success is always present; Message and Data are optional.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope with a human-readable message.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// OKData builds a success envelope carrying a payload.
func OKData(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a human-readable message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
