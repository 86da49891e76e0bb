package services

import "github.com/kataras/iris/v12"

// ErrorKind classifies a booking-engine failure so the HTTP layer can map
// it to a status code without string matching.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindUnauthorized
	KindValidationFailed
	KindBusinessRuleViolation
	KindPersistenceFailure
)

// Error carries a machine-distinguishable kind plus a human-readable
// message. Persistence failures keep the cause for logging but never
// expose it to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// StatusCode maps the kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return iris.StatusNotFound
	case KindUnauthorized:
		return iris.StatusForbidden
	case KindValidationFailed, KindBusinessRuleViolation:
		return iris.StatusUnprocessableEntity
	default:
		return iris.StatusInternalServerError
	}
}

// Title returns the error title used in JSON error responses.
func (e *Error) Title() string {
	switch e.Kind {
	case KindNotFound:
		return "Not Found"
	case KindUnauthorized:
		return "Unauthorized"
	case KindValidationFailed:
		return "Validation Error"
	case KindBusinessRuleViolation:
		return "Unprocessable Entity"
	default:
		return "Internal Server Error"
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Invalid(message string) *Error {
	return &Error{Kind: KindValidationFailed, Message: message}
}

func RuleViolation(message string) *Error {
	return &Error{Kind: KindBusinessRuleViolation, Message: message}
}

func Persistence(cause error) *Error {
	return &Error{Kind: KindPersistenceFailure, Message: "A storage error occurred.", Cause: cause}
}
