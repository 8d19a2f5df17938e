package httpdto

// ErrorResponse is the body of 4xx/5xx responses on the profile routes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of successful updates and deletes, and of
// login failures.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
