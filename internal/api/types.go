// Package api defines response envelopes shared by every HTTP handler.
package api

// ErrorResponse is the uniform error payload returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform success-message payload.
type MessageResponse struct {
	Message string `json:"message"`
}
