package consulting

import "errors"

var (
	ErrRequestNotFound = errors.New("Consulting request not found")
)

const (
	reasonMissingRequestFields       = "Missing required fields: name, email, and description are required"
	reasonMissingCommunicationFields = "Missing required fields: type and content are required"
	reasonInvalidEmail               = "Invalid email format"
	reasonInvalidStatus              = "Invalid status"
	reasonInvalidCommunicationType   = "Invalid communication type"
	reasonBlankField                 = "Field cannot be empty: "
)

// ValidationError reports input that was missing or malformed. Its reason
// is safe to show to the caller as is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError reports whether err carries a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
