package common

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

// ValidationResponse carries the full field-keyed violation map so the
// frontend can mark every offending field in one round trip.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func NewValidationResponse(errors map[string]string) *ValidationResponse {
	return &ValidationResponse{
		Message: "Validation failed",
		Errors:  errors,
	}
}
