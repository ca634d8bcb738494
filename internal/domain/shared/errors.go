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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInactiveReference = NewDomainError("INACTIVE_REFERENCE", "Referenced resource is inactive")
	ErrDuplicateLine     = NewDomainError("DUPLICATE_LINE", "Product appears more than once in the line set")
	ErrValidationFailed  = NewDomainError("VALIDATION_FAILED", "Invalid input provided")
	ErrHasReferences     = NewDomainError("HAS_REFERENCES", "Resource is referenced by existing transactions")
)
