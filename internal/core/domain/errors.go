package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error. The HTTP boundary maps each kind to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Machine-readable error codes returned to clients.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeAuthentication         = "AUTHENTICATION_ERROR"
	CodeAuthorization          = "AUTHORIZATION_ERROR"
	CodeConflict               = "CONFLICT_ERROR"
	CodeNotFound               = "NOT_FOUND_ERROR"
	CodeServer                 = "SERVER_ERROR"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeInvalidUserIDFormat    = "INVALID_USER_ID_FORMAT"
	CodeTokenMissing           = "TOKEN_MISSING"
	CodeTokenInvalid           = "TOKEN_INVALID"
	CodeInsufficientPermission = "INSUFFICIENT_PERMISSIONS"
)

// Error is the single error type raised by the core. Kind drives the transport
// status, Code is stable for clients, Message is safe to show to them.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error carrying the same kind and code, so the sentinels
// below work with errors.Is even when the message differs.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	ErrInvalidCredentials = &Error{Kind: KindAuthentication, Code: CodeInvalidCredentials, Message: "Invalid email or password."}
	ErrTokenMissing       = &Error{Kind: KindAuthentication, Code: CodeTokenMissing, Message: "No token provided. Access denied."}
	ErrInvalidToken       = &Error{Kind: KindAuthentication, Code: CodeTokenInvalid, Message: "Invalid or expired token. Access forbidden."}

	ErrInsufficientPermissions = &Error{Kind: KindAuthorization, Code: CodeInsufficientPermission, Message: "Insufficient permissions. Access forbidden."}
	ErrMissingIdentity         = &Error{Kind: KindAuthorization, Code: CodeAuthorization, Message: "User roles not found. Access forbidden."}

	ErrEmailTaken   = &Error{Kind: KindConflict, Code: CodeEmailAlreadyRegistered, Message: "User with this email already exists."}
	ErrUserNotFound = &Error{Kind: KindNotFound, Code: CodeUserNotFound, Message: "User not found."}
)

// NewValidationError returns a validation failure with the given client-facing message.
func NewValidationError(code, msg string) *Error {
	if code == "" {
		code = CodeValidation
	}
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

// UserNotFound returns ErrUserNotFound with the offending id in the message.
func UserNotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeUserNotFound, Message: fmt.Sprintf("User with ID %s not found.", id)}
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindInternal
}
