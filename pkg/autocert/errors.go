package autocert

import "errors"

var (
	// ErrFormat is returned for malformed or empty participant CSV input.
	ErrFormat = errors.New("format error")
	// ErrValidation is returned when a precondition of the certificate flow is not met.
	ErrValidation = errors.New("validation error")
	// ErrExternalTool wraps failures of the PDF, zip or image libraries.
	ErrExternalTool = errors.New("external tool error")

	ErrCategoryExists = errors.New("category already exists")
)
