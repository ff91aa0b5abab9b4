package errors

import "fmt"

var (
	// Tokens.
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")

	// Authentication / authorization.
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidAPIKey      = fmt.Errorf("invalid API key")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTooManyAttempts    = fmt.Errorf("too many failed login attempts, try again later")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("insufficient permissions")

	// Context.
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Common.
	ErrNotFound     = fmt.Errorf("record not found")
	ErrBadRequest   = fmt.Errorf("bad request")
	ErrInvalidState = fmt.Errorf("operation not allowed in the current state")
	ErrEmailTaken   = fmt.Errorf("email is already registered")
)

// HttpError carries an HTTP status together with a safe client-facing message.
// The wrapped Err and Context are for logs only and never reach the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
