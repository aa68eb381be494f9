package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloghub/blog-system/internal/api/metrics"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
	"github.com/bloghub/blog-system/internal/core/token"
)

// Context keys set for downstream handlers.
const (
	ContextClaim = "claim"
	ContextUser  = "user"
)

// Auth validates the bearer token and resolves its subject against the user
// store. A structurally valid token whose subject no longer exists is
// rejected with 404, distinct from the 403 of an invalid token.
func Auth(tokens *token.Service, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "No token was provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("not_bearer").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unable to authenticate, need: Bearer authorization")
			}

			claim, err := tokens.Decode(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Invalid authorization token")
			}

			user, err := users.FindByID(c.Request().Context(), claim.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusNotFound, "No user was found")
				}
				return err
			}

			c.Set(ContextClaim, claim)
			c.Set(ContextUser, user)

			return next(c)
		}
	}
}
