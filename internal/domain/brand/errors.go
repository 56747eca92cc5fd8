package brand

import "errors"

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("brand: invalid request")
	// ErrAnalysisFailed is the single user-facing failure for the AI path.
	ErrAnalysisFailed = errors.New("Failed to analyze brand, please try again")
	ErrReportNotFound = errors.New("brand: report not found")
)

// ValidationError carries the message shown next to the form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
