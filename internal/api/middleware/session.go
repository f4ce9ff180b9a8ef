package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/ports"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "clinic_session"

// TokenVerifier unwraps a signed cookie token into the opaque session id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Session gates browser-facing routes. It unwraps the cookie token, touches
// the server-side session to slide its expiry, and injects user_id into the
// request context. Any failure redirects to the login page rather than
// returning an API error.
func Session(verifier TokenVerifier, sessions ports.SessionStore, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}

			sid, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}

			userID, err := sessions.Touch(c.Request().Context(), sid, ttl)
			if err != nil {
				return redirectToLogin(c)
			}

			c.Set("user_id", userID)
			c.Set("session_id", sid)

			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}
