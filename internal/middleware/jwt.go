package middleware

import (
	"context"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/common"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWT validates bearer tokens and loads the authenticated user into the
// request context. Tokens for unknown or deactivated users are rejected
// the same way as malformed ones.
func JWT(codec *auth.TokenCodec, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := codec.Decode(tokenString)
			if err != nil {
				return nil, err
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return nil, auth.ErrTokenInvalid
			}

			user, err := userRepo.GetByID(c.Request().Context(), userID)
			if err != nil || user == nil || !user.IsActive {
				return nil, auth.ErrTokenInvalid
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.IsSuperuserKey, user.IsSuperuser)
			c.SetRequest(c.Request().WithContext(ctx))

			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
		},
	})
}

// RequireSuperuser gates an endpoint to superusers. It must run after JWT.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !common.GetIsSuperuserFromContext(c.Request().Context()) {
				return echo.NewHTTPError(http.StatusForbidden, "Superuser privileges required")
			}
			return next(c)
		}
	}
}
