package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUnauthenticated is returned when a protected handler runs without a verified user.
	ErrUnauthenticated = errors.New("Not authenticated")
	// ErrTokenExpired is returned when the bearer token is past its expiry.
	ErrTokenExpired = errors.New("Token expired")
	// ErrInvalidToken is returned for malformed, tampered or incomplete tokens.
	ErrInvalidToken = errors.New("Invalid token")
	// ErrUserGone is returned when a valid token references a deleted user.
	ErrUserGone = errors.New("User not found")
	// ErrForbidden is returned when an authenticated user lacks the admin role.
	ErrForbidden = errors.New("Admin access required")

	// ErrUserNotFound is returned when a user record is absent.
	ErrUserNotFound = errors.New("User not found")
	// ErrMenuNotFound is returned when a menu is absent.
	ErrMenuNotFound = errors.New("Menu not found")
	// ErrMenuItemNotFound is returned when a menu item is absent.
	ErrMenuItemNotFound = errors.New("Item not found")
	// ErrTicketNotFound is returned when a ticket is absent.
	ErrTicketNotFound = errors.New("Ticket not found")

	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("Email already registered")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrPasswordTooLong is returned when a password is longer than bcrypt accepts.
	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes")
	// ErrNoFieldsProvided is returned when a profile update carries nothing to change.
	ErrNoFieldsProvided = errors.New("No fields to update")
	// ErrInvalidStatus is returned for ticket statuses outside the known set.
	ErrInvalidStatus = errors.New("invalid ticket status")

	// ErrDependencyUnavailable is returned when the backing store is unreachable or too slow.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// WindowClosedError is returned when a selection is attempted outside the
// selection window. Message comes from the window policy.
type WindowClosedError struct {
	Message string
}

func (e *WindowClosedError) Error() string {
	return e.Message
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// mapping ties a sentinel to its status and code. The client sees the
// sentinel's own text, never the wrap chain around it.
type mapping struct {
	sentinel error
	status   int
	code     string
}

var mappings = []mapping{
	{ErrTokenExpired, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrInvalidToken, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrUserGone, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrMenuNotFound, http.StatusNotFound, "MENU_NOT_FOUND"},
	{ErrMenuItemNotFound, http.StatusNotFound, "MENU_ITEM_NOT_FOUND"},
	{ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND"},
	{ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrNoFieldsProvided, http.StatusBadRequest, "NO_FIELDS_PROVIDED"},
	{ErrPasswordTooLong, http.StatusBadRequest, "INVALID_REQUEST"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var windowErr *WindowClosedError
	if errors.As(err, &windowErr) {
		return NewHTTPError(http.StatusBadRequest, windowErr.Message, "WINDOW_CLOSED")
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return NewHTTPError(m.status, m.sentinel.Error(), m.code)
		}
	}
	if errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return NewHTTPError(http.StatusServiceUnavailable, "service temporarily unavailable", "DEPENDENCY_UNAVAILABLE")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// ToEcho maps err to an echo error whose message is the ErrorResponse body.
// The original error is kept as the internal error for logging.
func ToEcho(err error) *echo.HTTPError {
	httpErr := MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
