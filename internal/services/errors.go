// internal/services/errors.go
// Structured error kinds (§7) and the status-code mapping the API layer
// uses to translate them.

package services

// ErrorKind classifies a service-layer failure for HTTP translation.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindForbidden          ErrorKind = "Forbidden"
	KindNotFound           ErrorKind = "NotFound"
	KindInvalidSchema      ErrorKind = "InvalidSchema"
	KindInvalidTransition  ErrorKind = "InvalidTransition"
	KindInvalidResult      ErrorKind = "InvalidResult"
	KindIncompleteStage    ErrorKind = "IncompleteStage"
	KindAlreadyFinalized   ErrorKind = "AlreadyFinalized"
	KindUnknownScoringType ErrorKind = "UnknownScoringType"
	KindConflict           ErrorKind = "Conflict"
	KindInternal           ErrorKind = "Internal"
)

// AppError carries a kind plus structured detail for the propagation
// policy in §7: offending input echoed back, current status included for
// lifecycle errors.
type AppError struct {
	Kind    ErrorKind
	Message string
	Detail  map[string]interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError constructs an AppError with optional structured detail.
func NewAppError(kind ErrorKind, message string, detail map[string]interface{}) *AppError {
	return &AppError{Kind: kind, Message: message, Detail: detail}
}

// KindToHTTPStatus maps an ErrorKind to its HTTP status code (§7 table).
func KindToHTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindUnauthenticated:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindInvalidSchema:
		return 422
	case KindInvalidTransition, KindInvalidResult, KindIncompleteStage, KindAlreadyFinalized, KindUnknownScoringType:
		return 400
	case KindConflict:
		return 409
	default:
		return 500
	}
}

// AsAppError unwraps err into an *AppError if possible, else synthesizes an
// Internal one so every error the API layer sees has a status mapping.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return &AppError{Kind: KindInternal, Message: err.Error()}
}
