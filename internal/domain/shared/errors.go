package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so that errors built with
// a custom message still match the sentinel of their kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInsufficientBalance = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
	ErrMathOverflow        = NewDomainError("MATH_OVERFLOW", "Arithmetic overflow")
)

// Field validation errors shared by every record that carries user text
var (
	ErrInvalidFieldLength = NewDomainError("INVALID_FIELD_LENGTH", "Field exceeds the maximum length")
	ErrFieldIsEmpty       = NewDomainError("FIELD_IS_EMPTY", "Field cannot be empty")
	ErrEmojisNotAllowed   = NewDomainError("EMOJIS_NOT_ALLOWED", "Field contains restricted symbols")
)
