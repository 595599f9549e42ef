package models

// ErrorResponse represents a request-level error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GradeResponse is the body returned for a grading attempt: the sheet result
// on success, or only the error message on failure
type GradeResponse struct {
	*SheetResult
	Error string `json:"error,omitempty"`
}

// Graded wraps a successful result
func Graded(result *SheetResult) GradeResponse {
	return GradeResponse{SheetResult: result}
}

// Failed wraps a pipeline failure message
func Failed(message string) GradeResponse {
	return GradeResponse{Error: message}
}

// NewGradeResponse picks the success or failure shape. message is used only
// when result is nil.
func NewGradeResponse(result *SheetResult, message string) GradeResponse {
	if result == nil {
		return Failed(message)
	}
	return Graded(result)
}
