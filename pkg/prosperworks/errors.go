package prosperworks

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned before any network call when the access token
// or the user email is missing.
var ErrNotConfigured = errors.New(
	"api not configured: set an access token and user email before making requests",
)

// ErrApplication is the root of every error raised by the client itself rather
// than by the remote server.
var ErrApplication = errors.New("prosperworks application error")

// Application errors. All of them match ErrApplication with errors.Is.
var (
	ErrBadJSON           = fmt.Errorf("%w: response body is not valid JSON", ErrApplication)
	ErrUnexpectedPayload = fmt.Errorf("%w: unexpected response payload", ErrApplication)
	ErrMissingID         = fmt.Errorf("%w: resource has no id", ErrApplication)
	ErrNotSearchable     = fmt.Errorf("%w: resource does not support search", ErrApplication)
	ErrUnknownRelation   = fmt.Errorf("%w: unknown relation", ErrApplication)
)

// InvalidFieldError reports a payload key that is not in the allow-list of the
// operation it was sent to.
type InvalidFieldError struct {
	Field     string
	Operation string
}

// Error implements the error interface.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s is not a valid %s field", e.Field, e.Operation)
}

// Unwrap makes InvalidFieldError match ErrApplication.
func (e *InvalidFieldError) Unwrap() error {
	return ErrApplication
}

// PopulateError reports a payload value whose JSON shape does not match the
// declared kind of the field it targets.
type PopulateError struct {
	Resource string
	Field    string
	Expected string
	Got      any
}

// Error implements the error interface.
func (e *PopulateError) Error() string {
	return fmt.Sprintf("%s.%s: expected %s, got %T", e.Resource, e.Field, e.Expected, e.Got)
}

// Unwrap makes PopulateError match ErrApplication.
func (e *PopulateError) Unwrap() error {
	return ErrApplication
}

// ServerError is a non-200 response from the API.
type ServerError struct {
	Code    int
	Title   string
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	msg := fmt.Sprintf("server responded with code %d. %s", e.Code, e.Title)
	if e.Message != "" {
		msg += " " + e.Message
	}

	return msg
}

// Is matches any ServerError carrying the same status code, so the sentinels
// below work with errors.Is.
func (e *ServerError) Is(target error) bool {
	t, ok := target.(*ServerError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

const unprocessableInfoURL = "http://www.restpatterns.org/HTTP_Status_Codes/422_-_Unprocessable_Entity"

// Server error kinds, one per status code the API documents.
var (
	ErrBadRequest = &ServerError{
		Code:  http.StatusBadRequest,
		Title: "General client error, possibly malformed request.",
	}
	ErrUnauthorized = &ServerError{
		Code:  http.StatusUnauthorized,
		Title: "The API key was not authorized (or no API key was found).",
	}
	ErrForbidden = &ServerError{
		Code:  http.StatusForbidden,
		Title: "The request is not allowed.",
	}
	ErrNotFound = &ServerError{
		Code:  http.StatusNotFound,
		Title: "The resource was not found.",
	}
	ErrUnprocessable = &ServerError{
		Code: http.StatusUnprocessableEntity,
		Title: "The request is allowed and the resource exists, but is semantically invalid. See " +
			unprocessableInfoURL,
	}
	ErrRateLimited = &ServerError{
		Code: http.StatusTooManyRequests,
		Title: "The rate limit has been reached for the account. The API allows 600 requests " +
			"every 10 minutes.",
	}
	ErrInternalServer = &ServerError{
		Code:  http.StatusInternalServerError,
		Title: "The server encountered an internal error.",
	}
)

var serverErrorKinds = map[int]*ServerError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusInternalServerError: ErrInternalServer,
}

// NewServerError builds the error for a status code. Codes outside the table
// get a generic title and keep the code as returned.
func NewServerError(code int, message string) *ServerError {
	title := "Unknown error."
	if kind, ok := serverErrorKinds[code]; ok {
		title = kind.Title
	}

	return &ServerError{Code: code, Title: title, Message: message}
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited checks if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// AsServerError extracts the ServerError from an error chain.
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr, true
	}

	return nil, false
}
