package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope for every 2xx body with content.
type Response struct {
	Status  string `json:"status" example:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Error   string `json:"error" example:"resource not found"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Error: err, Details: details}
}
