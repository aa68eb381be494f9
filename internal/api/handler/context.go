package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloghub/blog-system/internal/api/middleware"
	"github.com/bloghub/blog-system/internal/core/token"
)

// ctxClaim extracts the identity claim injected by the Auth middleware and
// fast-fails before any service call: a missing or empty subject means the
// middleware did not run on this route.
func ctxClaim(c echo.Context) (token.Claim, error) {
	claim, _ := c.Get(middleware.ContextClaim).(token.Claim)
	if claim.SubjectID == "" {
		return token.Claim{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claim, nil
}
