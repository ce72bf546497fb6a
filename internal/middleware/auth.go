package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/auth"
	"github.com/onlyfilms/backend/pkg/response"
)

// viewerContextKey is where validated claims are stored on the request scope.
const viewerContextKey = "viewer"

// AccessGate returns the echo middleware that guards every route. It always
// attempts to validate a presented token and attaches the resulting viewer
// context even on public routes, so public endpoints can personalize their
// output. Protected routes fail closed: no valid viewer, no handler.
func AccessGate(authority *auth.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// CORS preflight never carries credentials.
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			token, present := auth.ExtractBearer(c.Request().Header.Get("Authorization"))

			validated := false
			if present {
				if claims, authErr := authority.Validate(token); authErr == nil {
					c.Set(viewerContextKey, claims)
					validated = true
				}
			}

			if auth.Classify(c.Request().URL.Path, c.Request().Method) == auth.Public {
				return next(c)
			}

			if !present {
				return response.Unauthorized(c, "No token provided")
			}
			if !validated {
				return response.Unauthorized(c, "Invalid or expired token")
			}
			return next(c)
		}
	}
}

// Viewer returns the validated claims attached to the request, if any.
func Viewer(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(viewerContextKey).(*auth.Claims)
	return claims, ok
}

// MustViewer returns the validated claims on a protected route. It only
// returns nil if a handler was wired onto a public route by mistake.
func MustViewer(c echo.Context) *auth.Claims {
	claims, _ := c.Get(viewerContextKey).(*auth.Claims)
	return claims
}
