// Package middleware holds the authentication and authorization middleware
// shared by the protected route groups.
package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"hostelfood/internal/auth"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/service"
)

const (
	claimsKey = "claims"
	userKey   = "currentUser"
)

// JWT verifies the bearer token and stores its claims on the context.
// Missing, malformed, tampered and expired tokens all end in a 401.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, auth.ErrExpiredToken) {
				return apperrors.ToEcho(apperrors.ErrTokenExpired)
			}
			return apperrors.ToEcho(apperrors.ErrInvalidToken)
		},
	})
}

// LoadUser resolves the token's user and stores it on the context. A token
// whose user no longer exists is rejected.
func LoadUser(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				return apperrors.ToEcho(apperrors.ErrUnauthenticated)
			}

			user, err := users.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return apperrors.ToEcho(apperrors.ErrUserGone)
				}
				return apperrors.ToEcho(err)
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects users whose stored role is not admin. It must run
// after LoadUser; without a loaded user the request is unauthenticated.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return apperrors.ToEcho(apperrors.ErrUnauthenticated)
		}
		if !user.Role.IsAdmin() {
			return apperrors.ToEcho(apperrors.ErrForbidden)
		}
		return next(c)
	}
}

// CurrentUser returns the user loaded by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}
