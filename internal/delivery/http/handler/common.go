package handler

// ErrorResponse is the uniform error payload for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
