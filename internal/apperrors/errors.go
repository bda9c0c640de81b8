package apperrors

import (
	"errors"
	"net/http"
)

// Error is a classified failure of the auth pipeline.
// Status and message are fixed per kind and decided here only,
// never constructed at the place the error is raised.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: "authentication failed"}
	ErrUserNotFound       = &Error{Status: http.StatusNotFound, Message: "user not found"}
	ErrPasswordMismatch   = &Error{Status: http.StatusUnauthorized, Message: "password does not match"}
	ErrUserAlreadyExists  = &Error{Status: http.StatusBadRequest, Message: "user with this nickname already exists"}

	ErrTokenNotFound    = &Error{Status: http.StatusUnauthorized, Message: "token not found"}
	ErrInvalidSignature = &Error{Status: http.StatusUnauthorized, Message: "invalid token signature"}
	ErrUnsupportedToken = &Error{Status: http.StatusUnauthorized, Message: "unsupported token"}
	ErrMalformedToken   = &Error{Status: http.StatusUnauthorized, Message: "malformed token"}
	ErrExpiredToken     = &Error{Status: http.StatusForbidden, Message: "expired token"}

	ErrRefreshTokenNotFound = &Error{Status: http.StatusUnauthorized, Message: "refresh token not found"}
	ErrExpiredRefreshToken  = &Error{Status: http.StatusForbidden, Message: "expired refresh token"}

	ErrJSONParse = &Error{Status: http.StatusInternalServerError, Message: "request body could not be parsed"}
	ErrInternal  = &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
)

// Classify returns the classified kind wrapped anywhere in err's chain.
// Everything unknown collapses to ErrInternal so no internal detail
// ever reaches a client.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}
