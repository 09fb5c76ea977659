package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"expired token", ErrTokenExpired, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"vanished user", ErrUserGone, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"no verified user", ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"wrapped menu not found", fmt.Errorf("analytics: %w", ErrMenuNotFound), http.StatusNotFound, "MENU_NOT_FOUND"},
		{"ticket not found", ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND"},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"no fields", ErrNoFieldsProvided, http.StatusBadRequest, "NO_FIELDS_PROVIDED"},
		{"password too long", ErrPasswordTooLong, http.StatusBadRequest, "INVALID_REQUEST"},
		{"window closed", &WindowClosedError{Message: "Selection window is closed"}, http.StatusBadRequest, "WINDOW_CLOSED"},
		{"store down", fmt.Errorf("%w: no reachable servers", ErrDependencyUnavailable), http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE"},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WindowMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(&WindowClosedError{Message: "Selection window is closed"})
	assert.Equal(t, "Selection window is closed", httpErr.ToErrorResponse().Error)
}

func TestMapErrorToHTTP_WrappedSentinelKeepsOwnMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrapped item not found", fmt.Errorf("delete menu item %q: %w", "x", ErrMenuItemNotFound), "Item not found"},
		{"wrapped expired token", fmt.Errorf("verify: %w", ErrTokenExpired), "Token expired"},
		{"wrapped vanished user", fmt.Errorf("load user: %w", ErrUserGone), "User not found"},
		{"wrapped duplicate email", fmt.Errorf("register: %w", ErrDuplicateEmail), "Email already registered"},
		{"wrapped invalid status", fmt.Errorf("ticket t-1: %w", ErrInvalidStatus), "invalid ticket status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToHTTP(tt.err).Message)
		})
	}
}

func TestToEcho(t *testing.T) {
	he := ToEcho(fmt.Errorf("delete: %w", ErrMenuItemNotFound))
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, ErrorResponse{Error: "Item not found", Code: "MENU_ITEM_NOT_FOUND"}, he.Message)
	assert.ErrorIs(t, he.Internal, ErrMenuItemNotFound)
}
