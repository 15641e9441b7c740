package apperr

import "net/http"

// Kind is the discriminant of an application error. It is fixed when the
// error is constructed, so handling code never inspects type names or
// message strings to classify a failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindRateLimit
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	CodeInternal       = "INTERNAL_ERROR"
)

// Error is an application-level error that already carries the HTTP status
// and machine code it should surface with. The error handler middleware
// returns Status, Code and Message to the client verbatim.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a generic application error with a caller-chosen status and code.
func New(status int, code string, message string) *Error {
	return &Error{Kind: KindGeneric, Status: status, Code: code, Message: message}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func NewAuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Code: CodeAuthentication, Message: message}
}

func NewAuthorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusForbidden, Code: CodeAuthorization, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewRateLimitError(message string) *Error {
	return &Error{Kind: KindRateLimit, Status: http.StatusTooManyRequests, Code: CodeRateLimit, Message: message}
}
